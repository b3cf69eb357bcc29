package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

// Platform is the client OS a sign-in or push token came from.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

var platformRule = regexp.MustCompile(`^(ios|android)$`)

func (l *Platform) Scan(value interface{}) error {
	*l = Platform(value.(string))
	return nil
}

func (l Platform) Value() string {
	return string(l)
}

func ScanPlatform(value string) Platform {
	return Platform(value)
}

func ValidatePlatform(fl validator.FieldLevel) bool {
	return platformRule.MatchString(fl.Field().String())
}

func ValidatePlatformRaw(value string) bool {
	return platformRule.MatchString(value)
}
