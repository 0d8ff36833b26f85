package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"confidencevoice/internal/entity"
	"github.com/go-playground/validator/v10"
)

var patterns = map[string]*regexp.Regexp{
	"person_name":    regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`),
	"pincode":        regexp.MustCompile(`^[0-9]{6}$`),
	"card_number":    regexp.MustCompile(`^[0-9]{16}$`),
	"expiry_month":   regexp.MustCompile(`^(0[1-9]|1[0-2])$`),
	"expiry_year":    regexp.MustCompile(`^20[2-9][0-9]$`),
	"cvv":            regexp.MustCompile(`^[0-9]{3}$`),
	"upi_id":         regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9]+$`),
	"account_number": regexp.MustCompile(`^[0-9]{9,18}$`),
	"ifsc":           regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
}

var patternMessages = map[string]string{
	"person_name":    "Name should contain only letters and spaces (2-50 characters)",
	"pincode":        "Pincode should be exactly 6 digits",
	"card_number":    "Card number should be exactly 16 digits",
	"expiry_month":   "Month should be between 01-12",
	"expiry_year":    "Year should be between 2020-2099",
	"cvv":            "CVV should be exactly 3 digits",
	"upi_id":         "Please enter a valid UPI ID (e.g., name@upi)",
	"account_number": "Account number should be 9-18 digits",
	"ifsc":           "Please enter a valid IFSC code",
}

// Validator checks request bodies. It satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, re := range patterns {
		re := re
		// registration only fails on an empty tag
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate runs the struct tags of i. Failures come back as *ValidationError whose
// message names the first offending field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		msg := fieldMessage(fe.Field(), fe.Tag(), fe.Param())
		if verr.Message == "" {
			verr.Message = msg
		}
		verr.Fields[fe.Field()] = msg
	}
	return verr
}

func fieldMessage(field, tag, param string) string {
	if msg, ok := patternMessages[tag]; ok {
		return msg
	}
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return field + " must be at least " + param + " long"
	case "oneof":
		return field + " must be one of: " + param
	default:
		return field + " is invalid"
	}
}

type fieldRule struct {
	field string
	tag   string
	value func(*entity.CheckoutRequest) string
	msg   string
}

var shippingRules = []fieldRule{
	{"name", "required,person_name", func(r *entity.CheckoutRequest) string { return r.Shipping.Name }, patternMessages["person_name"]},
	{"address", "required", func(r *entity.CheckoutRequest) string { return strings.TrimSpace(r.Shipping.Address) }, "Billing address is required"},
	{"pincode", "required,pincode", func(r *entity.CheckoutRequest) string { return r.Shipping.Pincode }, patternMessages["pincode"]},
}

var paymentRules = map[string][]fieldRule{
	entity.PaymentMethodCreditCard: {
		{"card_holder", "required,person_name", func(r *entity.CheckoutRequest) string { return r.Payment.CardHolder }, patternMessages["person_name"]},
		{"card_number", "required,card_number", func(r *entity.CheckoutRequest) string { return r.Payment.CardNumber }, patternMessages["card_number"]},
		{"expiry_month", "required,expiry_month", func(r *entity.CheckoutRequest) string { return r.Payment.ExpiryMonth }, patternMessages["expiry_month"]},
		{"expiry_year", "required,expiry_year", func(r *entity.CheckoutRequest) string { return r.Payment.ExpiryYear }, patternMessages["expiry_year"]},
		{"cvv", "required,cvv", func(r *entity.CheckoutRequest) string { return r.Payment.CVV }, patternMessages["cvv"]},
	},
	entity.PaymentMethodUPI: {
		{"upi_id", "required,upi_id", func(r *entity.CheckoutRequest) string { return r.Payment.UPIID }, patternMessages["upi_id"]},
	},
	entity.PaymentMethodNetbanking: {
		{"bank_name", "required", func(r *entity.CheckoutRequest) string { return strings.TrimSpace(r.Payment.BankName) }, "Bank name is required"},
		{"account_number", "required,account_number", func(r *entity.CheckoutRequest) string { return r.Payment.AccountNumber }, patternMessages["account_number"]},
		{"ifsc", "required,ifsc", func(r *entity.CheckoutRequest) string { return r.Payment.IFSC }, patternMessages["ifsc"]},
	},
	entity.PaymentMethodCOD: nil,
}

// Checkout validates shipping and the fields required by the chosen payment method.
// Every offending field gets its own message.
func (v *Validator) Checkout(req *entity.CheckoutRequest) error {
	fields := map[string]string{}
	var first string
	add := func(field, msg string) {
		if first == "" {
			first = msg
		}
		fields[field] = msg
	}

	for _, rule := range shippingRules {
		if v.validate.Var(rule.value(req), rule.tag) != nil {
			add(rule.field, rule.msg)
		}
	}

	rules, ok := paymentRules[req.Payment.Method]
	switch {
	case req.Payment.Method == "":
		add("payment_method", "Please select a payment method")
	case !ok:
		add("payment_method", "Unsupported payment method: "+req.Payment.Method)
	}
	for _, rule := range rules {
		if v.validate.Var(rule.value(req), rule.tag) != nil {
			add(rule.field, rule.msg)
		}
	}

	if req.BuyNow != nil && req.BuyNow.BookID <= 0 {
		add("book_id", "book_id is required")
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Message: first, Fields: fields}
}
