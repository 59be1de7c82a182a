package service

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"gls-plugin/config"
)

const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// Account is one named credential set for the carrier API. Selection of
// the active account is external configuration; the vault only reads it.
type Account struct {
	Name         string
	Username     string
	Password     string
	ClientNumber int64
	CountryCode  string
	Environment  string
}

// PasswordDigest is the wire form of the account secret: a SHA-512
// digest of the trimmed password. The carrier expects it serialized as
// a JSON numeric array, which ByteArray takes care of.
func PasswordDigest(secret string) ByteArray {
	sum := sha512.Sum512([]byte(strings.TrimSpace(secret)))
	return sum[:]
}

// APIBaseURL resolves the country- and environment-specific endpoint
// root, e.g. https://api.mygls.hr/ParcelService.svc/json.
func (a Account) APIBaseURL() string {
	host := "api.mygls." + strings.ToLower(strings.TrimSpace(a.CountryCode))
	if strings.EqualFold(strings.TrimSpace(a.Environment), EnvironmentSandbox) {
		host = "api.test.mygls." + strings.ToLower(strings.TrimSpace(a.CountryCode))
	}
	return fmt.Sprintf("https://%s/ParcelService.svc/json", host)
}

type Vault struct {
	accounts map[string]Account
	active   string
}

func NewVault(cfg config.Config) *Vault {
	accounts := make(map[string]Account, len(cfg.Accounts))
	for _, ac := range cfg.Accounts {
		name := strings.TrimSpace(ac.Name)
		if name == "" {
			continue
		}
		accounts[name] = Account{
			Name:         name,
			Username:     strings.TrimSpace(ac.Username),
			Password:     ac.Password,
			ClientNumber: ac.ClientNumber,
			CountryCode:  strings.ToUpper(strings.TrimSpace(ac.CountryCode)),
			Environment:  strings.ToLower(strings.TrimSpace(ac.Environment)),
		}
	}
	return &Vault{
		accounts: accounts,
		active:   strings.TrimSpace(cfg.ActiveAccount),
	}
}

// ResolveActive returns the configured active account. Requests must
// never be built without a complete credential set, so incomplete
// accounts fail here rather than at the carrier.
func (v *Vault) ResolveActive() (Account, error) {
	if v == nil || v.active == "" {
		return Account{}, ErrNoActiveAccount
	}
	account, ok := v.accounts[v.active]
	if !ok {
		return Account{}, ErrNoActiveAccount
	}
	if account.Username == "" || strings.TrimSpace(account.Password) == "" || account.ClientNumber == 0 {
		return Account{}, ErrCredentialMissing
	}
	if account.CountryCode == "" {
		return Account{}, ErrCredentialMissing
	}
	return account, nil
}
