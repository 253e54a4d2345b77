package normalize

import (
	"errors"
	"strconv"
	"strings"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/services/markup"
)

var errNotPositive = errors.New("house number must be a positive integer")

// Normalizer converts raw records. Remark and notice texts are cleaned with
// the strip function it was built with.
type Normalizer struct {
	strip markup.StripFunc
}

func New(strip markup.StripFunc) *Normalizer {
	if strip == nil {
		strip = markup.Keep
	}
	return &Normalizer{strip: strip}
}

// Normalize converts the record at position row (1-based) into an entry.
func (n *Normalizer) Normalize(row int, rec store.Record) (domain.Entry, error) {
	field := func(col int) string {
		return strings.TrimSpace(rec[col])
	}

	number, err := parseHouseNumber(field(store.ColHouseNumber))
	if err != nil {
		return domain.Entry{}, &ValueFormatError{
			Row:    row,
			Field:  store.Columns[store.ColHouseNumber],
			Value:  rec[store.ColHouseNumber],
			Record: rec,
			Cause:  err,
		}
	}

	hood := domain.NeighborhoodKey{
		Locality:     field(store.ColLocality),
		Neighborhood: field(store.ColNeighborhood),
	}
	fraction := field(store.ColFraction)

	address := domain.Address{
		Locality:     hood.Locality,
		Neighborhood: hood.Neighborhood,
		Street:       field(store.ColStreet),
		HouseNumber:  number,
		Suffix:       domain.NewSuffix(field(store.ColHouseLetter), field(store.ColHouseNumberAddition)),
	}

	rule := domain.Rule{
		Neighborhood:   hood,
		Fraction:       fraction,
		Instruction:    field(store.ColInstruction),
		CollectionDays: field(store.ColCollectionDays),
		Frequency:      field(store.ColFrequency),
		PutOut:         field(store.ColPutOut),
		Where:          field(store.ColWhere),
		Remark:         strings.TrimSpace(n.strip(field(store.ColRemark))),
		Notice:         strings.TrimSpace(n.strip(field(store.ColNotice))),
		NoticeFrom:     field(store.ColNoticeFrom),
		NoticeUntil:    field(store.ColNoticeUntil),
	}

	return domain.Entry{
		Address:      address,
		Rule:         rule,
		Neighborhood: hood,
		Fraction:     fraction,
		Residential:  ParseBool(field(store.ColResidential)),
		District:     field(store.ColDistrict),
	}, nil
}

// NormalizeAll converts all records and stops at the first malformed one.
func (n *Normalizer) NormalizeAll(records []store.Record) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(records))
	for i, rec := range records {
		entry, err := n.Normalize(i+1, rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseHouseNumber(s string) (int, error) {
	number, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if number <= 0 {
		return 0, errNotPositive
	}
	return number, nil
}

// ParseBool reads the residential flag. The export writes True/False; empty,
// "false" and "0" are false, anything else is true.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "no", "nee":
		return false
	default:
		return true
	}
}
