// Package banking is the domain service layer of the ledger: banks and their
// directory, the account variants, and the facade that ties them to the IBAN
// codec and the currency converter.
package banking

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Bank is an immutable bank record. Identity is the (Code, Country) pair;
// BIC, name and address are informational only.
type Bank struct {
	Country string
	Code    int
	BIC     string
	Name    string
	Address string
}

// Equal reports whether two banks denote the same institution. Records with
// the same code and country are equal even if the other fields differ.
func (b *Bank) Equal(o *Bank) bool {
	return o != nil && b.Code == o.Code && b.Country == o.Country
}

// CountryName returns the English display name of the bank's country
// ("LT" -> "Lithuania"). Unrecognized codes come back unchanged.
func (b *Bank) CountryName() string {
	region, err := language.ParseRegion(b.Country)
	if err != nil {
		return b.Country
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name
	}
	return b.Country
}

func (b *Bank) String() string {
	if b.Name != "" {
		return b.Name
	}
	if b.BIC != "" {
		return fmt.Sprintf("Bank#%d (%s), %s", b.Code, b.BIC, b.CountryName())
	}
	return fmt.Sprintf("Bank#%d, %s", b.Code, b.CountryName())
}
