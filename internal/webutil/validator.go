package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

// fieldLabels は画面に出すフィールド名
var fieldLabels = map[string]string{
	"totalCourseHours":   "Total course hours",
	"hoursPerDay":        "Hours per day",
	"workingDaysPerWeek": "Working days per week",
	"absenceImpact":      "Absence impact",
	"courseStart":        "Course start",
	"projectedEnd":       "Projected end",
	"type":               "Message type",
	"invalidatedDays":    "Invalidated days",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// フィールド名を画面用ラベルに置き換えるメッセージ
	registerTranslation := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, label(fe.Field()), fe.Param())
			return t
		})
	}
	registerTranslation("required", "{0} is required.")
	registerTranslation("gte", "{0} must be {1} or greater.")
	registerTranslation("lte", "{0} must be {1} or less.")
	registerTranslation("datetime", "{0} must be a date in the format YYYY-MM-DD.")
	registerTranslation("eq", "{0} must be {1}.")
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
