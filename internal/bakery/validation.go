package bakery

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Form field names accepted by the API.
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldBakeryID = "bakery_id"
)

// ValidateName checks that a bakery name is not blank.
// Length is not limited.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	return nil
}

// ParseNewBakedGood builds a BakedGood from submitted form fields.
//
// name, price and bakery_id must all be present and non-blank; otherwise
// ErrMissingFields is returned before anything is parsed.
func ParseNewBakedGood(form url.Values) (*BakedGood, error) {
	name := strings.TrimSpace(form.Get(FieldName))
	rawPrice := strings.TrimSpace(form.Get(FieldPrice))
	rawBakeryID := strings.TrimSpace(form.Get(FieldBakeryID))

	if name == "" || rawPrice == "" || rawBakeryID == "" {
		return nil, ErrMissingFields
	}

	price, err := ParsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	bakeryID, err := ParseID(rawBakeryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBakeryID, rawBakeryID)
	}

	return &BakedGood{
		Name:     name,
		Price:    price,
		BakeryID: bakeryID,
	}, nil
}

// ParsePrice parses a price that must be a finite, non-negative number.
func ParsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, raw)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidPrice, raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidPrice)
	}
	return price, nil
}

// ParseID parses a positive integer identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing id %q: %w", raw, err)
	}
	if id < 1 {
		return 0, fmt.Errorf("id %d must be positive", id)
	}
	return id, nil
}

// ParseBakeryUpdate builds a BakeryUpdate from submitted form fields.
//
// Only name may change. Any other field, including id, is rejected with
// ErrImmutableField so a request can never rewrite a bakery's identity.
// An empty form yields an empty update.
func ParseBakeryUpdate(form url.Values) (BakeryUpdate, error) {
	var update BakeryUpdate

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k != FieldName {
			return BakeryUpdate{}, fmt.Errorf("%w: %s", ErrImmutableField, k)
		}
	}

	if _, ok := form[FieldName]; ok {
		name := strings.TrimSpace(form.Get(FieldName))
		if err := ValidateName(name); err != nil {
			return BakeryUpdate{}, err
		}
		update.Name = &name
	}

	return update, nil
}
