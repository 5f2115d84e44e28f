package httpinterface

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tdex-network/tdex-escrow/internal/core/application"
	"github.com/tdex-network/tdex-escrow/internal/core/domain"
)

type handler struct {
	ledgerSvc   application.LedgerService
	operatorSvc application.OperatorService
	pubsubSvc   application.PubSubService
}

func (h *handler) initRegistry(w http.ResponseWriter, r *http.Request) {
	req := initRegistryRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.operatorSvc.Initialize(r.Context(), owner); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) getRegistry(w http.ResponseWriter, r *http.Request) {
	h.writeRegistry(w, r)
}

func (h *handler) getFeeConfig(w http.ResponseWriter, r *http.Request) {
	feeConfig, err := h.ledgerSvc.GetFeeConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{
		"protocol_fee_percent": feeConfig.ProtocolFeePercent,
		"max_bps":              feeConfig.MaxBps,
	})
}

func (h *handler) isTokenSupported(w http.ResponseWriter, r *http.Request) {
	token, err := parseAddress("token", r.PathValue("token"))
	if err != nil {
		writeError(w, err)
		return
	}

	supported, err := h.ledgerSvc.IsTokenSupported(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token.Hex(),
		"supported": supported,
	})
}

func (h *handler) setSupportedToken(w http.ResponseWriter, r *http.Request) {
	req := setSupportedTokenRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := parseAddress("token", req.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.operatorSvc.SetSupportedToken(
		r.Context(), caller, token, req.Enabled,
	); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) updateProtocolFee(w http.ResponseWriter, r *http.Request) {
	req := updateProtocolFeeRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.operatorSvc.UpdateProtocolFee(
		r.Context(), caller, req.ProtocolFee,
	); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) updateRoleAddress(w http.ResponseWriter, r *http.Request) {
	req := updateRoleAddressRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	kind, err := domain.ParseRoleKind(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	addr, err := parseAddress(req.Role, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.operatorSvc.UpdateRoleAddress(
		r.Context(), caller, kind, addr,
	); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) pause(w http.ResponseWriter, r *http.Request) {
	caller, err := h.parseCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.operatorSvc.Pause(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) unpause(w http.ResponseWriter, r *http.Request) {
	caller, err := h.parseCaller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.operatorSvc.Unpause(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	h.writeRegistry(w, r)
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	req := createOrderRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	args, err := parseCreateOrderRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.ledgerSvc.CreateOrder(r.Context(), *args)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOrderResponse(*order))
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var sender *common.Address
	if s := r.URL.Query().Get("sender"); len(s) > 0 {
		addr, err := parseAddress("sender", s)
		if err != nil {
			writeError(w, err)
			return
		}
		sender = &addr
	}

	orders, err := h.ledgerSvc.ListOrders(r.Context(), sender)
	if err != nil {
		writeError(w, err)
		return
	}
	list := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		list = append(list, newOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": list})
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := parseHash("order id", r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.ledgerSvc.GetOrder(r.Context(), orderId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(*order))
}

func (h *handler) settle(w http.ResponseWriter, r *http.Request) {
	orderId, err := parseHash("order id", r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	req := settleRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	splitOrderId, err := parseHash("split order id", req.SplitOrderId)
	if err != nil {
		writeError(w, err)
		return
	}
	provider, err := parseAddress("liquidity provider", req.LiquidityProvider)
	if err != nil {
		writeError(w, err)
		return
	}

	settlement, err := h.ledgerSvc.Settle(r.Context(), application.SettleArgs{
		Caller:            caller,
		SplitOrderId:      splitOrderId,
		OrderId:           orderId,
		LiquidityProvider: provider,
		SettleBps:         req.SettleBps,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettlementResponse(settlement))
}

func (h *handler) refund(w http.ResponseWriter, r *http.Request) {
	orderId, err := parseHash("order id", r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	req := refundRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	fee, err := parseOptionalAmount("fee", req.Fee)
	if err != nil {
		writeError(w, err)
		return
	}

	refund, err := h.ledgerSvc.Refund(r.Context(), application.RefundArgs{
		Caller:  caller,
		Fee:     fee,
		OrderId: orderId,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refundResponse{
		Fee:    amountString(refund.Fee),
		Amount: amountString(refund.Amount),
	})
}

func (h *handler) deposit(w http.ResponseWriter, r *http.Request) {
	req := depositRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	account, err := parseAddress("account", req.Account)
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := parseAddress("asset", req.Asset)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.ledgerSvc.Deposit(r.Context(), account, asset, amount); err != nil {
		writeError(w, err)
		return
	}
	h.writeBalance(w, r, account, asset)
}

func (h *handler) getBalance(w http.ResponseWriter, r *http.Request) {
	account, err := parseAddress("account", r.PathValue("account"))
	if err != nil {
		writeError(w, err)
		return
	}
	asset, err := parseAddress("asset", r.PathValue("asset"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeBalance(w, r, account, asset)
}

func (h *handler) addWebhook(w http.ResponseWriter, r *http.Request) {
	if h.pubsubSvc == nil {
		writeError(w, errWebhooksDisabled)
		return
	}
	req := addWebhookRequest{}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.pubsubSvc.AddWebhook(r.Context(), req.Event, req.Endpoint, req.Secret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	if h.pubsubSvc == nil {
		writeError(w, errWebhooksDisabled)
		return
	}

	hooks, err := h.pubsubSvc.ListWebhooks(r.Context(), r.URL.Query().Get("event"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"webhooks": hooks})
}

func (h *handler) removeWebhook(w http.ResponseWriter, r *http.Request) {
	if h.pubsubSvc == nil {
		writeError(w, errWebhooksDisabled)
		return
	}

	if err := h.pubsubSvc.RemoveWebhook(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) parseCaller(r *http.Request) (common.Address, error) {
	req := callerRequest{}
	if err := decodeBody(r, &req); err != nil {
		return common.Address{}, err
	}
	return parseAddress("caller", req.Caller)
}

func (h *handler) writeRegistry(w http.ResponseWriter, r *http.Request) {
	registry, err := h.operatorSvc.GetRegistry(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRegistryResponse(registry))
}

func (h *handler) writeBalance(
	w http.ResponseWriter, r *http.Request, account, asset common.Address,
) {
	balance, err := h.ledgerSvc.GetBalance(r.Context(), account, asset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
		"amount":  amountString(balance),
	})
}

func parseCreateOrderRequest(
	req createOrderRequest,
) (*application.CreateOrderArgs, error) {
	sender, err := parseAddress("sender", req.Sender)
	if err != nil {
		return nil, err
	}
	token, err := parseAddress("token", req.Token)
	if err != nil {
		return nil, err
	}
	amount, err := parseOptionalAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	rate, err := parseRate(req.Rate)
	if err != nil {
		return nil, err
	}
	feeRecipient, err := parseAddress("sender fee recipient", req.SenderFeeRecipient)
	if err != nil {
		return nil, err
	}
	senderFee, err := parseOptionalAmount("sender fee", req.SenderFee)
	if err != nil {
		return nil, err
	}
	refundAddress, err := parseAddress("refund", req.RefundAddress)
	if err != nil {
		return nil, err
	}

	return &application.CreateOrderArgs{
		Sender:             sender,
		Token:              token,
		Amount:             amount,
		Rate:               rate,
		SenderFeeRecipient: feeRecipient,
		SenderFee:          senderFee,
		RefundAddress:      refundAddress,
		MessageHash:        req.MessageHash,
	}, nil
}
