package models

// Wallet is a named custody bucket. Names are unique, case-insensitive.
type Wallet struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LastPurchaseMeta describes where and by whom an asset was last bought.
type LastPurchaseMeta struct {
	WalletID   *int64 `json:"wallet_id"`
	WalletName string `json:"wallet_name,omitempty"`
	User       string `json:"user,omitempty"`
}
