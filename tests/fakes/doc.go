// Package fakes provides test doubles for the vault and platform clients.
//
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior and to record every call for ordering assertions.
//
// Usage:
//
//	vault := fakes.NewFakeVault()
//	vault.Accounts[1] = cryptopus.Account{ID: 1, AccountName: "web"}
//	vault.Err = cryptopus.ErrUnauthorized
//	// hand vault to the dispatcher or sync engine...
//	assert.Equal(t, []string{"GetAccount 1"}, vault.Calls)
package fakes
