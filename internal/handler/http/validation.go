package http

import (
	"reflect"
	"sync"

	"github.com/kano20041101/xuexizhushou/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册枚举校验规则 importance 和 difficulty。
// 多次调用只注册一次。
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("importance", enumRule(func(s string) error {
			_, err := domain.ParseImportance(s)
			return err
		}))
		_ = v.RegisterValidation("difficulty", enumRule(func(s string) error {
			_, err := domain.ParseDifficulty(s)
			return err
		}))
	})
}

func enumRule(parse func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		for field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		if field.Kind() != reflect.String {
			return false
		}
		return parse(field.String()) == nil
	}
}
