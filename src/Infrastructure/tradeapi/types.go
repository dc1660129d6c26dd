package tradeapi

// --- Auth ---

type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type TokenData struct {
	ExpiresIn int64  `json:"expiresIn"`
	Token     string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Chains ---

type Chain struct {
	ID        int64  `json:"id"`
	ChainID   string `json:"chainId"`
	Name      string `json:"name"`
	RPCURI    string `json:"rpcUri"`
	WSRPCURI  string `json:"wsRpcUri"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// ChainPayload is the create/update body. Nil fields are left out of the JSON.
type ChainPayload struct {
	ChainID  *string `json:"chainId,omitempty"`
	Name     *string `json:"name,omitempty"`
	RPCURI   *string `json:"rpcUri,omitempty"`
	WSRPCURI *string `json:"wsRpcUri,omitempty"`
}

// --- DEXes ---

type DEX struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type DEXPayload struct {
	Name *string `json:"name,omitempty"`
}

// --- DEX routers ---

type ProtocolVersion string

const (
	ProtocolV1 ProtocolVersion = "1"
	ProtocolV2 ProtocolVersion = "2"
	ProtocolV3 ProtocolVersion = "3"
)

type RouterType string

const (
	RouterTypeRouter02  RouterType = "router02"
	RouterTypeUniversal RouterType = "universal"
)

type DEXRouter struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	ProtocolVersion ProtocolVersion `json:"protocolVersion"`
	Type            RouterType      `json:"type"`
	Chain           Chain           `json:"chain"`
	DEX             DEX             `json:"dex"`
	CreatedAt       int64           `json:"createdAt"`
	UpdatedAt       int64           `json:"updatedAt"`
}

type DEXRouterPayload struct {
	Name            *string          `json:"name,omitempty"`
	Address         *string          `json:"address,omitempty"`
	ProtocolVersion *ProtocolVersion `json:"protocolVersion,omitempty"`
	Type            *RouterType      `json:"type,omitempty"`
	ChainID         *string          `json:"chainId,omitempty"`
	DEXID           *int64           `json:"dexId,omitempty"`
}

// --- Trading contracts ---

type TradingContract struct {
	ID        int64    `json:"id"`
	ChainID   string   `json:"chainId"`
	Address   string   `json:"address"`
	Decimals  int      `json:"decimals"`
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	GasPrice  *string  `json:"gasPrice,omitempty"`
	GasLimit  *string  `json:"gasLimit,omitempty"`
	Slippage  *float64 `json:"slippage,omitempty"`
	Chain     *Chain   `json:"chain,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

type TradingContractPayload struct {
	ChainID  *string  `json:"chainId,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Decimals *int     `json:"decimals,omitempty"`
	Name     *string  `json:"name,omitempty"`
	Symbol   *string  `json:"symbol,omitempty"`
	RouterID *int64   `json:"routerId,omitempty"`
	GasPrice *string  `json:"gasPrice,omitempty"`
	GasLimit *string  `json:"gasLimit,omitempty"`
	Slippage *float64 `json:"slippage,omitempty"`
}

// --- Wallet ---

type Wallet struct {
	Address string `json:"address"`
}

type WalletBalance struct {
	BalanceInHex string `json:"balanceInHex"`
	BalanceInWei string `json:"balanceInWei"`
	Balance      string `json:"balance"`
}

type ApprovalStatus struct {
	Approved bool `json:"approved"`
}

type CompletedTransaction struct {
	TxHash string `json:"txHash"`
}

type approvalRequest struct {
	ContractID  int64 `json:"contractId,omitempty"`
	DEXRouterID int64 `json:"dexRouterId"`
}

type swapRequest struct {
	ContractID    int64  `json:"contractId"`
	DEXRouterID   int64  `json:"dexRouterId"`
	ExactAmountIn string `json:"exactAmountIn"`
}

// --- Snipes ---

type SnipeStatus int

const (
	SnipeInit     SnipeStatus = 1
	SnipeSniping  SnipeStatus = 2
	SnipeSwapping SnipeStatus = 3
	SnipeDone     SnipeStatus = 4
	SnipeError    SnipeStatus = -1
)

// Terminal reports whether the backend will not move the snipe any further.
func (s SnipeStatus) Terminal() bool {
	return s == SnipeDone || s == SnipeError
}

type Snipe struct {
	ID              int64       `json:"id"`
	RPCURI          string      `json:"rpcUri"`
	WSRPCURI        string      `json:"wsRpcUri"`
	Data            string      `json:"data"`
	SnipedAmountOut string      `json:"snipedAmountOut"`
	ExactAmountIn   string      `json:"exactAmountIn"`
	Status          SnipeStatus `json:"status"`
	ContractID      int64       `json:"contractId"`
	CreatedAt       int64       `json:"createdAt"`
	UpdatedAt       int64       `json:"updatedAt"`
}

type SnipeData struct {
	Status SnipeStatus `json:"status"`
	Data   string      `json:"data"`
	Logs   *string     `json:"logs"`
}

type SnipeAction struct {
	ContractID      int64   `json:"contractId"`
	RouterID        int64   `json:"routerId"`
	SnipedAmountOut string  `json:"snipedAmountOut"`
	ExactAmountIn   string  `json:"exactAmountIn"`
	RPCURI          *string `json:"rpcUri,omitempty"`
	WSRPCURI        *string `json:"wsRpcUri,omitempty"`
}
