package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate 包级单例（validator 实例缓存结构体元数据，并发安全）
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 错误信息里用 json 字段名，而不是 Go 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate 解析并校验过程输入
// 校验是全量的：多个字段同时非法时逐一上报，不在第一个错误处短路（表单场景需要）
// payload 为空时按 {} 处理，让 required 校验自然触发
func decodeAndValidate(payload []byte, input any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("{}")
	}
	if err := json.Unmarshal(payload, input); err != nil {
		return &Error{
			Code:    CodeBadInput,
			Message: "request body is not valid JSON: " + err.Error(),
		}
	}

	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// InvalidValidationError 等非字段错误
			return &Error{Code: CodeBadInput, Message: err.Error()}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return BadInput(fields)
	}
	return nil
}

// fieldMessage 单字段的人类可读错误信息
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required and must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
