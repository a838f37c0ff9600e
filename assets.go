package networth

import (
	"slices"
	"strings"

	"github.com/etnz/networth/date"
	"github.com/shopspring/decimal"
)

// InstitutionType distinguishes banks and brokers from real estate.
type InstitutionType string

const (
	Financial  InstitutionType = "financial"
	RealEstate InstitutionType = "real_estate"
)

// Institution holds accounts, or is a real estate property valued directly.
type Institution struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           InstitutionType  `json:"type"`
	AssetValue     *decimal.Decimal `json:"assetValue,omitempty"`
	LiabilityValue *decimal.Decimal `json:"liabilityValue,omitempty"`
}

// Net returns the asset value minus the liability value.
func (inst Institution) Net() decimal.Decimal {
	net := decimal.Zero
	if inst.AssetValue != nil {
		net = net.Add(*inst.AssetValue)
	}
	if inst.LiabilityValue != nil {
		net = net.Sub(*inst.LiabilityValue)
	}
	return net
}

// StockHolding is a position in a listed security.
type StockHolding struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
}

// CDHolding is a certificate of deposit.
type CDHolding struct {
	ID           string          `json:"id"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interestRate"` // in percent
	OpenDate     date.Date       `json:"openDate"`
	MaturityDate date.Date       `json:"maturityDate"`
}

// Account is a cash balance plus holdings at a financial institution.
type Account struct {
	ID            string          `json:"id"`
	InstitutionID string          `json:"institutionId"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	StockHoldings []StockHolding  `json:"stockHoldings"`
	CDHoldings    []CDHolding     `json:"cdHoldings"`
}

// Value returns the cash balance plus the market value of stocks plus the CD principals.
func (a Account) Value() decimal.Decimal {
	v := a.Balance
	for _, h := range a.StockHoldings {
		v = v.Add(h.Shares.Mul(h.CurrentPrice))
	}
	for _, cd := range a.CDHoldings {
		v = v.Add(cd.Principal)
	}
	return v
}

// Snapshot returns the value of each account by id.
func Snapshot(accounts []Account) map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		values[a.ID] = a.Value()
	}
	return values
}

// RealEstateNet returns the net value of all real estate institutions.
func RealEstateNet(institutions []Institution) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range institutions {
		if inst.Type == RealEstate {
			total = total.Add(inst.Net())
		}
	}
	return total
}

// NetWorth returns the value of all accounts plus the real estate net value.
func NetWorth(institutions []Institution, accounts []Account) decimal.Decimal {
	total := RealEstateNet(institutions)
	for _, a := range accounts {
		total = total.Add(a.Value())
	}
	return total
}

// InstitutionAccounts returns the accounts held at the institution 'id'.
func InstitutionAccounts(accounts []Account, id string) []Account {
	var res []Account
	for _, a := range accounts {
		if a.InstitutionID == id {
			res = append(res, a)
		}
	}
	return res
}

// InstitutionValue returns the net value of a real estate institution, or
// the sum of its accounts for a financial one.
func InstitutionValue(inst Institution, accounts []Account) decimal.Decimal {
	if inst.Type == RealEstate {
		return inst.Net()
	}
	total := decimal.Zero
	for _, a := range InstitutionAccounts(accounts, inst.ID) {
		total = total.Add(a.Value())
	}
	return total
}

// MigrateInstitutions gives a type to institutions stored without one.
func MigrateInstitutions(institutions []Institution) []Institution {
	res := slices.Clone(institutions)
	for i := range res {
		if res[i].Type == "" {
			res[i].Type = Financial
		}
	}
	return res
}

// DeleteInstitution returns institutions without 'id'. A financial
// institution that still has accounts cannot be deleted.
func DeleteInstitution(institutions []Institution, accounts []Account, id string) ([]Institution, error) {
	i := slices.IndexFunc(institutions, func(inst Institution) bool { return inst.ID == id })
	if i < 0 {
		return institutions, invalid("institution", "unknown institution %q", id)
	}
	if institutions[i].Type != RealEstate && len(InstitutionAccounts(accounts, id)) > 0 {
		return institutions, invalid("institution", "%q still has accounts, delete or move them first", institutions[i].Name)
	}
	return slices.Delete(slices.Clone(institutions), i, i+1), nil
}

// DeleteAccount returns accounts without 'id'.
func DeleteAccount(accounts []Account, id string) []Account {
	return slices.DeleteFunc(slices.Clone(accounts), func(a Account) bool { return a.ID == id })
}

// Symbols returns the distinct, upper cased, stock symbols held in accounts.
func Symbols(accounts []Account) []string {
	var symbols []string
	for _, a := range accounts {
		for _, h := range a.StockHoldings {
			s := strings.ToUpper(strings.TrimSpace(h.Symbol))
			if s != "" && !slices.Contains(symbols, s) {
				symbols = append(symbols, s)
			}
		}
	}
	return symbols
}

// ApplyPrices returns a copy of accounts where holdings use the quoted prices.
// Holdings without a quote keep their last known price.
func ApplyPrices(accounts []Account, prices map[string]decimal.Decimal) []Account {
	res := slices.Clone(accounts)
	for i := range res {
		holdings := slices.Clone(res[i].StockHoldings)
		for j := range holdings {
			if p, ok := prices[strings.ToUpper(strings.TrimSpace(holdings[j].Symbol))]; ok {
				holdings[j].CurrentPrice = p
			}
		}
		res[i].StockHoldings = holdings
	}
	return res
}

// FindAccount returns the account whose id or "institution/account" name is 'ref'.
func FindAccount(institutions []Institution, accounts []Account, ref string) (Account, bool) {
	names := accountNames(institutions, accounts)
	for _, a := range accounts {
		if a.ID == ref || names[a.ID] == ref {
			return a, true
		}
	}
	return Account{}, false
}

// FindInstitution returns the institution whose id or name is 'ref'.
func FindInstitution(institutions []Institution, ref string) (Institution, bool) {
	for _, inst := range institutions {
		if inst.ID == ref || inst.Name == ref {
			return inst, true
		}
	}
	return Institution{}, false
}

// accountNames returns "institution/account" display names by account id.
func accountNames(institutions []Institution, accounts []Account) map[string]string {
	byID := make(map[string]string, len(institutions))
	for _, inst := range institutions {
		byID[inst.ID] = inst.Name
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = byID[a.InstitutionID] + "/" + a.Name
	}
	return names
}
