package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/smartcover/quote-api/internal/apikey"
	"github.com/smartcover/quote-api/internal/chain"
	"github.com/smartcover/quote-api/internal/quote"
	"github.com/smartcover/quote-api/internal/sign"
	"github.com/smartcover/quote-api/internal/validate"
)

type handlers struct {
	config  Config
	engine  *quote.Engine
	signer  *sign.Signer
	gateway chain.Gateway
	keys    keyVerifier
}

type keyVerifier interface {
	Verify(ctx context.Context, key, origin string) (*apikey.Key, error)
}

// requireAPIKey authenticates requests by x-api-key header and Origin
// against the persisted key store.
func (h *handlers) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-api-key")
		if key == "" {
			authFailureCounter.Inc()
			http.Error(w, "api key required", http.StatusUnauthorized)
			return
		}

		_, err := h.keys.Verify(r.Context(), key, r.Header.Get("Origin"))
		if err != nil {
			switch {
			case errors.Is(err, apikey.ErrKeyNotFound):
				authFailureCounter.Inc()
				http.Error(w, "unknown api key", http.StatusUnauthorized)
			case errors.Is(err, apikey.ErrOriginMismatch):
				authFailureCounter.Inc()
				http.Error(w, "origin not allowed", http.StatusForbidden)
			default:
				log.Printf("err: keys.Verify: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleGetQuote prices a cover request and returns a signed quote, or the
// uncoverable shape when the contract has no staked collateral.
func (h *handlers) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	var (
		ctx   = r.Context()
		query = r.URL.Query()
	)

	req, err := validate.QuoteRequest(validate.QuoteParams{
		ContractAddress: query.Get("contractAddress"),
		CoverAmount:     query.Get("coverAmount"),
		Currency:        query.Get("currency"),
		Period:          query.Get("period"),
	})
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":      "invalid request",
				"violations": verr.Violations,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	market, err := h.fetchMarket(ctx, req.ContractAddress, req.Currency)
	if err != nil {
		log.Printf("err: fetchMarket: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}

	q, err := h.engine.Quote(req, market)
	if err != nil {
		log.Printf("err: engine.Quote: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !q.Coverable() {
		uncoverableCounter.Inc()
		writeJSON(w, http.StatusOK, map[string]any{
			"error":       q.Error,
			"generatedAt": q.GeneratedAt,
			"expiresAt":   q.ExpiresAt,
		})
		return
	}

	sig, err := h.signer.Sign(q, h.gateway.VerifyingContractAddress())
	if err != nil {
		log.Printf("err: signer.Sign: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	quoteCounter.WithLabelValues(string(q.Currency)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"currency":    q.Currency,
		"period":      q.PeriodDays,
		"amount":      q.Amount.String(),
		"price":       q.Price.String(),
		"priceInNXM":  q.PriceInNXM.String(),
		"expiresAt":   q.ExpiresAt,
		"generatedAt": q.GeneratedAt,
		"contract":    strings.ToLower(q.ContractAddress.Hex()),
		"v":           sig.V,
		"r":           sig.R,
		"s":           sig.S,
	})
}

// handleGetCapacity returns the current insurable exposure for a contract
// in wei.
func (h *handlers) handleGetCapacity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contract, err := validate.ContractAddress(chi.URLParam(r, "contractAddress"))
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":      "invalid request",
				"violations": verr.Violations,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	market, err := h.fetchMarket(ctx, contract, quote.CurrencyETH)
	if err != nil {
		log.Printf("err: fetchMarket: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}

	capacity := quote.Capacity(market.NetStakedCollateral, market.TokenPrice, market.MinimumCapital)
	writeJSON(w, http.StatusOK, map[string]any{
		"capacity": capacity.Floor().String(),
	})
}

func (h *handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// fetchMarket issues the four independent chain reads concurrently. They
// are not an atomic snapshot; whatever values come back are the snapshot
// this request prices against.
func (h *handlers) fetchMarket(ctx context.Context, contract common.Address, cur quote.Currency) (quote.MarketSnapshot, error) {
	if h.config.NodeTimeoutSecs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(h.config.NodeTimeoutSecs)*time.Second)
		defer cancel()
	}

	var (
		m    quote.MarketSnapshot
		wg   sync.WaitGroup
		errs [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		m.CurrencyRate, errs[0] = h.gateway.CurrencyRate(ctx, cur)
	}()
	go func() {
		defer wg.Done()
		m.TokenPrice, errs[1] = h.gateway.TokenPrice(ctx)
	}()
	go func() {
		defer wg.Done()
		m.NetStakedCollateral, errs[2] = h.gateway.NetStakedCollateral(ctx, contract)
	}()
	go func() {
		defer wg.Done()
		m.MinimumCapital, errs[3] = h.gateway.MinimumCapital(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return quote.MarketSnapshot{}, err
		}
	}
	return m, nil
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	jsonb, err := json.Marshal(body)
	if err != nil {
		log.Printf("failed to marshal resp: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonb)
}
