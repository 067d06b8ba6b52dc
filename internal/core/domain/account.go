package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Scope identifies the owner class of an account.
type Scope string

const (
	ScopeUser     Scope = "user"
	ScopePlatform Scope = "platform"
	ScopeExternal Scope = "external"
)

// Bucket identifies which sub-balance of a user wallet an account addresses.
// Non-user scopes carry no bucket.
type Bucket string

const (
	BucketAvailable Bucket = "available"
	BucketReserved  Bucket = "reserved"
)

// AccountRef is a typed account identifier. Its string form
// ({scope}:{id}:{currency}:{bucket} for user accounts,
// {scope}:{name}:{currency} otherwise) is the stable contract used to
// address any sub-balance, including synthetic platform/external accounts
// that never get a wallet row.
type AccountRef struct {
	Scope    Scope
	UserID   int64  // set when Scope == ScopeUser
	Name     string // set for platform/external scopes (e.g. "fees", "bank")
	Currency string
	Bucket   Bucket // set only when Scope == ScopeUser
}

// UserAvailable addresses the spendable balance of a user wallet.
func UserAvailable(userID int64, currency string) AccountRef {
	return AccountRef{Scope: ScopeUser, UserID: userID, Currency: currency, Bucket: BucketAvailable}
}

// UserReserved addresses the earmarked balance of a user wallet.
func UserReserved(userID int64, currency string) AccountRef {
	return AccountRef{Scope: ScopeUser, UserID: userID, Currency: currency, Bucket: BucketReserved}
}

// PlatformFees addresses the platform's fee collection account for a currency.
func PlatformFees(currency string) AccountRef {
	return AccountRef{Scope: ScopePlatform, Name: "fees", Currency: currency}
}

// ExternalBank addresses the external settlement counterpart used by
// deposits and withdrawals.
func ExternalBank(currency string) AccountRef {
	return AccountRef{Scope: ScopeExternal, Name: "bank", Currency: currency}
}

// String renders the stable account key.
func (a AccountRef) String() string {
	if a.Scope == ScopeUser {
		return fmt.Sprintf("user:%d:%s:%s", a.UserID, a.Currency, a.Bucket)
	}
	return fmt.Sprintf("%s:%s:%s", a.Scope, a.Name, a.Currency)
}

// IsUser reports whether the account is backed by a wallet row.
func (a AccountRef) IsUser() bool {
	return a.Scope == ScopeUser
}

// WalletKey returns the wallet row this account maps onto.
// Only valid for user-scope accounts.
func (a AccountRef) WalletKey() WalletKey {
	return WalletKey{UserID: a.UserID, Currency: a.Currency}
}

// Validate checks structural consistency of the reference.
func (a AccountRef) Validate() error {
	if a.Currency == "" {
		return fmt.Errorf("account ref has empty currency")
	}
	switch a.Scope {
	case ScopeUser:
		if a.UserID <= 0 {
			return fmt.Errorf("user account ref has invalid user id %d", a.UserID)
		}
		if a.Bucket != BucketAvailable && a.Bucket != BucketReserved {
			return fmt.Errorf("user account ref has invalid bucket %q", a.Bucket)
		}
	case ScopePlatform, ScopeExternal:
		if a.Name == "" {
			return fmt.Errorf("%s account ref has empty name", a.Scope)
		}
		if a.Bucket != "" {
			return fmt.Errorf("%s account ref must not carry a bucket", a.Scope)
		}
	default:
		return fmt.Errorf("unknown account scope %q", a.Scope)
	}
	return nil
}

// ParseAccountRef parses the string key form back into a typed reference.
func ParseAccountRef(key string) (AccountRef, error) {
	parts := strings.Split(key, ":")
	switch {
	case len(parts) == 4 && Scope(parts[0]) == ScopeUser:
		userID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return AccountRef{}, fmt.Errorf("invalid user id in account key %q: %w", key, err)
		}
		ref := AccountRef{Scope: ScopeUser, UserID: userID, Currency: parts[2], Bucket: Bucket(parts[3])}
		if err := ref.Validate(); err != nil {
			return AccountRef{}, err
		}
		return ref, nil
	case len(parts) == 3 && (Scope(parts[0]) == ScopePlatform || Scope(parts[0]) == ScopeExternal):
		ref := AccountRef{Scope: Scope(parts[0]), Name: parts[1], Currency: parts[2]}
		if err := ref.Validate(); err != nil {
			return AccountRef{}, err
		}
		return ref, nil
	default:
		return AccountRef{}, fmt.Errorf("malformed account key %q", key)
	}
}
