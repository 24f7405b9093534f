package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"trendkit/internal/core/trenderr"

	"github.com/go-playground/validator/v10"
)

// Query defaults.
const (
	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 20
	DefaultBulkHours     = 168
	DefaultBulkLimit     = 100
	MaxBulkLimit         = 200
	DefaultRelatedLimit  = 10
	MaxRelatedLimit      = 100
	DefaultRelatedDays   = 90
	DefaultInterestDays  = 7
	DefaultCompareDays   = 90
	MaxKeywords          = 5
	MaxDays              = 365
)

// BulkHours lists the accepted bulk time windows.
func BulkHours() []string {
	return []string{"4", "24", "48", "168"}
}

// TrendingQuery selects realtime trending keywords.
type TrendingQuery struct {
	Geo    string `json:"geo" validate:"required,iso3166_1_alpha2"`
	Limit  int    `json:"limit" validate:"gt=0,lte=20"`
	Format Format `json:"format" validate:"oneof=minimal standard full"`
}

// NewTrendingQuery returns a query with every default applied.
func NewTrendingQuery() TrendingQuery {
	return TrendingQuery{Geo: DefaultGeo, Limit: DefaultTrendingLimit, Format: FormatMinimal}
}

// Validate checks the query before any upstream call.
func (q *TrendingQuery) Validate() error {
	q.Geo = NormalizeGeo(q.Geo)
	return check(q)
}

// BulkQuery selects the bulk trending table.
type BulkQuery struct {
	Geo    string `json:"geo" validate:"required,iso3166_1_alpha2"`
	Hours  int    `json:"hours" validate:"oneof=4 24 48 168"`
	Limit  int    `json:"limit" validate:"gt=0,lte=200"`
	Enrich bool   `json:"enrich"`
	// Output is an optional .json or .csv export path.
	Output string `json:"output,omitempty"`
}

// NewBulkQuery returns a query with every default applied.
func NewBulkQuery() BulkQuery {
	return BulkQuery{Geo: DefaultGeo, Hours: DefaultBulkHours, Limit: DefaultBulkLimit}
}

// Validate checks the query before any upstream call.
func (q *BulkQuery) Validate() error {
	q.Geo = NormalizeGeo(q.Geo)
	return check(q)
}

// RelatedQuery selects queries related to one keyword.
type RelatedQuery struct {
	Keyword string `json:"keyword" validate:"required"`
	Geo     string `json:"geo" validate:"required,iso3166_1_alpha2"`
	Days    int    `json:"days" validate:"gt=0,lte=365"`
	Limit   int    `json:"limit" validate:"gt=0,lte=100"`
}

// NewRelatedQuery returns a query for keyword with every default applied.
func NewRelatedQuery(keyword string) RelatedQuery {
	return RelatedQuery{Keyword: keyword, Geo: DefaultGeo, Days: DefaultRelatedDays, Limit: DefaultRelatedLimit}
}

// Validate checks the query before any upstream call.
func (q *RelatedQuery) Validate() error {
	q.Geo = NormalizeGeo(q.Geo)
	q.Keyword = strings.TrimSpace(q.Keyword)
	return check(q)
}

// InterestQuery selects interest over time for up to five keywords.
type InterestQuery struct {
	Keywords []string `json:"keywords" validate:"min=1,max=5,dive,required"`
	Geo      string   `json:"geo" validate:"required,iso3166_1_alpha2"`
	Days     int      `json:"days" validate:"gt=0,lte=365"`
	Platform Platform `json:"platform" validate:"oneof=web youtube images news froogle"`
}

// NewInterestQuery returns a query for keywords with every default applied.
func NewInterestQuery(keywords ...string) InterestQuery {
	return InterestQuery{Keywords: keywords, Geo: DefaultGeo, Days: DefaultInterestDays, Platform: PlatformWeb}
}

// Validate checks the query before any upstream call.
func (q *InterestQuery) Validate() error {
	q.Geo = NormalizeGeo(q.Geo)
	q.Keywords = trimAll(q.Keywords)
	return check(q)
}

// CompareQuery compares the mean interest of up to five keywords.
type CompareQuery struct {
	Keywords []string `json:"keywords" validate:"min=1,max=5,dive,required"`
	Geo      string   `json:"geo" validate:"required,iso3166_1_alpha2"`
	Days     int      `json:"days" validate:"gt=0,lte=365"`
	Platform Platform `json:"platform" validate:"oneof=web youtube images news froogle"`
}

// NewCompareQuery returns a query for keywords with every default applied.
func NewCompareQuery(keywords ...string) CompareQuery {
	return CompareQuery{Keywords: keywords, Geo: DefaultGeo, Days: DefaultCompareDays, Platform: PlatformWeb}
}

// Validate checks the query before any upstream call.
func (q *CompareQuery) Validate() error {
	q.Geo = NormalizeGeo(q.Geo)
	q.Keywords = trimAll(q.Keywords)
	return check(q)
}

// SplitKeywords splits a comma separated list, dropping blanks.
func SplitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func trimAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.TrimSpace(k)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs the struct rules and converts the first failure into a validation error.
func check(q any) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return trenderr.Validation("", err.Error(), nil)
	}
	return translate(errs[0])
}

func translate(fe validator.FieldError) error {
	param := fe.Field()
	if i := strings.IndexByte(param, '['); i >= 0 {
		param = param[:i]
	}

	switch fe.Tag() {
	case "gt":
		return trenderr.Validation(param, fmt.Sprintf("%s must be positive, got %v", param, fe.Value()), nil)
	case "lte":
		return trenderr.Validation(param, fmt.Sprintf("%s must be at most %s, got %v", param, fe.Param(), fe.Value()), nil)
	case "oneof":
		valid := strings.Fields(fe.Param())
		return trenderr.Validation(param, fmt.Sprintf("invalid %s %v", param, fe.Value()), valid)
	case "iso3166_1_alpha2":
		return trenderr.Validation(param, fmt.Sprintf("unrecognized country code %q", fe.Value()), SupportedGeos())
	case "min", "max":
		return trenderr.Validation(param, fmt.Sprintf("%s must contain between 1 and %d entries, got %d",
			param, MaxKeywords, reflect.ValueOf(fe.Value()).Len()), nil)
	case "required":
		if param != fe.Field() {
			return trenderr.Validation(param, fmt.Sprintf("%s must not contain empty entries", param), nil)
		}
		return trenderr.Validation(param, fmt.Sprintf("%s is required", param), nil)
	default:
		return trenderr.Validation(param, fmt.Sprintf("invalid %s: failed %s rule", param, fe.Tag()), nil)
	}
}
