// Package validation は宣言的なフィールドルール（binding タグ）を
// Laravel 風の per-field メッセージに変換する。違反は最初の1件ではなく
// 全件列挙して 422 相当で返すための材料にする。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 12時間表記 "H:MM AM/PM"。先頭ゼロなし、時は1〜12。
var clock12Re = regexp.MustCompile(`^(1[0-2]|[1-9]):[0-5][0-9] (AM|PM)$`)

// Clock12 は単体利用（ハンドラ外）向けの直接チェック。
func Clock12(s string) bool { return clock12Re.MatchString(s) }

// Register: gin の binding エンジンへカスタムルールと
// JSONタグ名の解決を登録する。main から一度だけ呼ぶ。
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("clock12", func(fl validator.FieldLevel) bool {
		return clock12Re.MatchString(fl.Field().String())
	})
	// エラーメッセージは構造体フィールド名ではなくJSONのキーで返す
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
}

// Fields: bind エラーをフィールド→メッセージ列へ展開する。
// validator.ValidationErrors 以外（型不一致など）も422の形に寄せる。
func Fields(err error) map[string][]string {
	out := map[string][]string{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			name := fe.Field()
			out[name] = append(out[name], messageFor(fe))
		}
		return out
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		out[ute.Field] = []string{fmt.Sprintf("The %s must be of type %s.", ute.Field, ute.Type.String())}
		return out
	}

	out["payload"] = []string{"The request body is malformed."}
	return out
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "datetime":
		return fmt.Sprintf("The %s is not a valid date.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "clock12":
		return fmt.Sprintf("The %s format is invalid.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
