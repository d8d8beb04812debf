// Package validate checks externally supplied quote parameters before any
// chain read or computation happens. Failures enumerate every violated
// constraint, not just the first, so API callers can fix a request in one
// round trip.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/smartcover/quote-api/internal/quote"
)

const (
	MinPeriodDays = 30
	MaxPeriodDays = 365
)

var (
	contractAddrRe = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{40}$`)
	positiveIntRe  = regexp.MustCompile(`^[0-9]+$`)

	v = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("contract_addr", func(fl validator.FieldLevel) bool {
		return contractAddrRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return positiveIntRe.MatchString(s) && strings.Trim(s, "0") != ""
	})
	v.RegisterValidation("period_days", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n >= MinPeriodDays && n <= MaxPeriodDays
	})

	return v
}

// QuoteParams are the raw query parameters of a quote request, exactly as
// received.
type QuoteParams struct {
	ContractAddress string `validate:"required,contract_addr"`
	CoverAmount     string `validate:"required,positive_int"`
	Currency        string `validate:"required,oneof=ETH DAI"`
	Period          string `validate:"required,period_days"`
}

// Error carries every violated constraint of a rejected request.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "invalid request: " + strings.Join(e.Violations, "; ")
}

var violationMessages = map[string]string{
	"ContractAddress": "contractAddress must be a 40 character hex address, optionally 0x prefixed",
	"CoverAmount":     "coverAmount must be a positive whole number",
	"Currency":        fmt.Sprintf("currency must be one of %v", quote.Currencies),
	"Period":          fmt.Sprintf("period must be between %d and %d days", MinPeriodDays, MaxPeriodDays),
}

// QuoteRequest validates params and converts them into a typed request. On
// failure it returns a *Error listing all violations.
func QuoteRequest(params QuoteParams) (quote.Request, error) {
	if err := v.Struct(params); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return quote.Request{}, err
		}

		var violations []string
		for _, fe := range verrs {
			msg, ok := violationMessages[fe.Field()]
			if !ok {
				msg = fe.Error()
			}
			violations = append(violations, msg)
		}
		return quote.Request{}, &Error{Violations: violations}
	}

	amount, err := decimal.NewFromString(params.CoverAmount)
	if err != nil {
		return quote.Request{}, &Error{Violations: []string{violationMessages["CoverAmount"]}}
	}
	period, _ := strconv.Atoi(params.Period)

	return quote.Request{
		ContractAddress: common.HexToAddress(params.ContractAddress),
		Amount:          amount,
		Currency:        quote.Currency(params.Currency),
		PeriodDays:      period,
	}, nil
}

// ContractAddress is the narrow check used by capacity queries: only the
// address shape is validated.
func ContractAddress(s string) (common.Address, error) {
	if !contractAddrRe.MatchString(s) {
		return common.Address{}, &Error{Violations: []string{violationMessages["ContractAddress"]}}
	}
	return common.HexToAddress(s), nil
}
