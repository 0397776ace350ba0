// Package service implements the shop business logic: ordered catalog reads,
// order creation with title enrichment, status changes and shop management.
package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/go-playground/validator/v10"
)

const meterName = "shop-service"

// Prefectures are the accepted values of a shop prefecture.
var Prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// newValidator reports fields by their JSON names and knows the prefecture rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	prefectures := make(map[string]struct{}, len(Prefectures))
	for _, p := range Prefectures {
		prefectures[p] = struct{}{}
	}
	_ = v.RegisterValidation("prefecture", func(fl validator.FieldLevel) bool {
		_, ok := prefectures[fl.Field().String()]
		return ok
	})
	return v
}

// toValidationError converts validator output into a ValidationError. Other errors are returned as is.
func toValidationError(err error) error {
	fields, err := fieldErrors(err)
	if err != nil {
		return err
	}
	return shoperrors.NewFieldsValidationError(fields)
}

// fieldErrors maps validator output to field messages. A nil input yields an empty map.
func fieldErrors(err error) (map[string]string, error) {
	fields := map[string]string{}
	if err == nil {
		return fields, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	for _, fieldErr := range validationErrors {
		fields[fieldName(fieldErr)] = ruleMessage(fieldErr)
	}
	return fields, nil
}

// fieldName drops the struct name from the namespace, e.g. OrderCreateDto.items[p1] -> items[p1].
func fieldName(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "prefecture":
		return "must be a Japanese prefecture"
	default:
		return "failed on rule: " + fe.Tag()
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
