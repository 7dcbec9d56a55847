package entity

// WalletCurrency is the nativeCurrency object of an add-network request.
type WalletCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// WalletNetworkConfig is the parameter object of a wallet_addEthereumChain request.
// RPCURLs[0] is the primary RPC, the remainder are fallbacks.
type WalletNetworkConfig struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    WalletCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
	IconURLs          []string       `json:"iconUrls,omitempty"`
}
