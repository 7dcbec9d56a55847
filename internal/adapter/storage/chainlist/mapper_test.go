package chainlist

import (
	"encoding/json"
	"testing"

	dto "chainscope/internal/adapter/storage/chainlist/dto"
	"chainscope/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleChains = `[
  {
    "name": "Ethereum Mainnet",
    "chain": "ETH",
    "rpc": [
      "https://mainnet.infura.io/v3/${INFURA_API_KEY}",
      "https://eth.llamarpc.com",
      {"url": "wss://ethereum-rpc.publicnode.com", "tracking": "none"},
      "not a url"
    ],
    "faucets": [],
    "nativeCurrency": {"name": "Ether", "symbol": "ETH", "decimals": 18},
    "infoURL": "https://ethereum.org",
    "shortName": "eth",
    "chainId": 1,
    "networkId": 1,
    "slip44": 60,
    "ens": {"registry": "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"},
    "explorers": [{"name": "etherscan", "url": "https://etherscan.io", "standard": "EIP3091"}]
  },
  {
    "name": "Sepolia",
    "chain": "ETH",
    "rpc": ["https://rpc.sepolia.org"],
    "nativeCurrency": {"name": "Sepolia Ether", "symbol": "ETH", "decimals": 18},
    "shortName": "sep",
    "chainId": 11155111,
    "networkId": 11155111,
    "network": "testnet",
    "parent": {"type": "L2", "chain": "eip155-1", "bridges": [{"url": "https://bridge.example"}]}
  }
]`

func TestToDomainChains(t *testing.T) {
	var raws []dto.ChainRaw
	require.NoError(t, json.Unmarshal([]byte(sampleChains), &raws))

	chains := toDomainChains(raws, zap.NewNop())
	require.Len(t, chains, 2)

	eth := chains[0]
	assert.Equal(t, int64(1), eth.ChainID)
	assert.Equal(t, []entity.RPCURL{"https://eth.llamarpc.com", "wss://ethereum-rpc.publicnode.com"}, eth.RPC)
	assert.Equal(t, "Ether", eth.Currency.Name)
	assert.Equal(t, 18, eth.Currency.Decimals)
	require.NotNil(t, eth.Ens)
	require.Len(t, eth.Explorers, 1)
	assert.Equal(t, "https://etherscan.io", eth.Explorers[0].URL)
	assert.Nil(t, eth.Parent)

	sep := chains[1]
	assert.Equal(t, entity.NetworkTestnet, sep.Network)
	require.NotNil(t, sep.Parent)
	assert.Equal(t, []entity.Bridge{{URL: "https://bridge.example"}}, sep.Parent.Bridges)
}

func TestToDomainChainsNil(t *testing.T) {
	assert.Nil(t, toDomainChains(nil, zap.NewNop()))
}

func TestRPCRawUnmarshal(t *testing.T) {
	var raws []dto.RPCRaw
	require.NoError(t, json.Unmarshal([]byte(`["https://a", {"url": "https://b", "tracking": "limited"}]`), &raws))

	assert.Equal(t, []dto.RPCRaw{{URL: "https://a"}, {URL: "https://b", Tracking: "limited"}}, raws)
}
