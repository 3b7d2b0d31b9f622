package cryptopus

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/systmms/cry/pkg/secretstore"
)

// Account types as reported by the vault.
const (
	TypeCredentials = "account_credentials"
	TypeOSESecret   = "account_ose_secrets"
	typeOSEShort    = "ose_secret"
)

// Account is a vault credential record.
type Account struct {
	ID                int
	AccountName       string
	ClearTextUsername string
	ClearTextPassword string
	Type              string
	// SecretData is the decoded payload of ose_secret accounts.
	SecretData map[string]string
}

// IsSecret reports whether the account stores a platform secret payload.
func (a Account) IsSecret() bool {
	return a.Type == TypeOSESecret || a.Type == typeOSEShort
}

// ToSecret converts the account into a platform secret named after it.
func (a Account) ToSecret() secretstore.Secret {
	if len(a.SecretData) > 0 {
		return secretstore.New(a.AccountName, a.SecretData)
	}
	data := map[string]string{}
	if a.ClearTextUsername != "" {
		data["username"] = a.ClearTextUsername
	}
	if a.ClearTextPassword != "" {
		data["password"] = a.ClearTextPassword
	}
	return secretstore.New(a.AccountName, data)
}

// resource is a JSON:API resource object.
type resource struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Attributes resourceAttributes `json:"attributes"`
}

type resourceAttributes struct {
	AccountName       string `json:"accountname"`
	ClearTextUsername string `json:"cleartext_username"`
	ClearTextPassword string `json:"cleartext_password"`
	OSESecret         string `json:"ose_secret"`
}

type singleDocument struct {
	Data resource `json:"data"`
}

type listDocument struct {
	Data []resource `json:"data"`
}

func (r resource) account() (Account, error) {
	id, err := strconv.Atoi(r.ID)
	if err != nil {
		return Account{}, fmt.Errorf("invalid account id %q: %w", r.ID, err)
	}
	acc := Account{
		ID:                id,
		AccountName:       r.Attributes.AccountName,
		ClearTextUsername: r.Attributes.ClearTextUsername,
		ClearTextPassword: r.Attributes.ClearTextPassword,
		Type:              r.Type,
	}
	if strings.TrimSpace(r.Attributes.OSESecret) != "" {
		data, err := decodeSecretPayload(r.Attributes.OSESecret)
		if err != nil {
			return Account{}, fmt.Errorf("account %d: %w", id, err)
		}
		acc.SecretData = data
	}
	return acc, nil
}

// decodeSecretPayload accepts either a mapping nested under "data" (the
// shape of an exported Secret manifest) or a flat mapping.
func decodeSecretPayload(payload string) (map[string]string, error) {
	var doc struct {
		Data map[string]string `yaml:"data"`
	}
	if err := yaml.Unmarshal([]byte(payload), &doc); err == nil && len(doc.Data) > 0 {
		return doc.Data, nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal([]byte(payload), &flat); err != nil {
		return nil, fmt.Errorf("invalid ose_secret payload: %w", err)
	}
	return flat, nil
}
