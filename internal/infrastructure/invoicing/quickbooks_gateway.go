package invoicing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"
)

const (
	sandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	productionBaseURL = "https://quickbooks.api.intuit.com"
	oauthTokenURL     = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"
)

// QuickBooksGateway talks to the QuickBooks Online REST API. Tokens live in
// the store; an expired access token is refreshed transparently, and a dead
// refresh token surfaces as ErrInvoicingNotConnected.
//
// Env vars:
//   - QB_CLIENT_ID, QB_CLIENT_SECRET (required for refresh)
//   - QB_ENVIRONMENT (sandbox | production, default sandbox)
type QuickBooksGateway struct {
	store        interfaces.IQuickBooksTokenStore
	httpClient   *http.Client
	clientID     string
	clientSecret string
	baseURL      string
}

var _ interfaces.IInvoicingGateway = (*QuickBooksGateway)(nil)

func NewQuickBooksGateway(store interfaces.IQuickBooksTokenStore) *QuickBooksGateway {
	baseURL := sandboxBaseURL
	if strings.EqualFold(os.Getenv("QB_ENVIRONMENT"), "production") {
		baseURL = productionBaseURL
	}
	return &QuickBooksGateway{
		store:        store,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		clientID:     os.Getenv("QB_CLIENT_ID"),
		clientSecret: os.Getenv("QB_CLIENT_SECRET"),
		baseURL:      baseURL,
	}
}

// CreateInvoice resolves the QuickBooks customer by display name (creating
// one when missing), creates the invoice, and optionally asks QuickBooks to
// email it.
func (g *QuickBooksGateway) CreateInvoice(ctx context.Context, payload interfaces.InvoicePayload) (interfaces.InvoiceResult, error) {
	token, err := g.ensureToken(ctx)
	if err != nil {
		return interfaces.InvoiceResult{}, err
	}

	customerID, err := g.findOrCreateCustomer(ctx, token, payload)
	if err != nil {
		return interfaces.InvoiceResult{}, err
	}

	lines := make([]map[string]any, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		amount, _ := strconv.ParseFloat(l.Amount, 64)
		rate, _ := strconv.ParseFloat(l.Rate, 64)
		lines = append(lines, map[string]any{
			"DetailType":  "SalesItemLineDetail",
			"Amount":      amount,
			"Description": l.Description,
			"SalesItemLineDetail": map[string]any{
				"Qty":       l.Quantity,
				"UnitPrice": rate,
			},
		})
	}

	body := map[string]any{
		"CustomerRef": map[string]any{"value": customerID},
		"Line":        lines,
		"DocNumber":   payload.EstimateNumber,
	}
	if payload.Memo != "" {
		body["CustomerMemo"] = map[string]any{"value": payload.Memo}
	}
	if payload.CustomerEmail != "" {
		addrs := append([]string{payload.CustomerEmail}, payload.CCEmails...)
		body["BillEmail"] = map[string]any{"Address": strings.Join(addrs, ",")}
	}

	var out struct {
		Invoice struct {
			ID        string `json:"Id"`
			DocNumber string `json:"DocNumber"`
		} `json:"Invoice"`
	}
	path := fmt.Sprintf("/v3/company/%s/invoice?minorversion=65", token.RealmID)
	if err := g.doJSON(ctx, token, http.MethodPost, path, body, &out); err != nil {
		return interfaces.InvoiceResult{}, err
	}
	log.Printf("[invoicing][quickbooks] invoice created qb_invoice_id=%s doc_number=%s", out.Invoice.ID, out.Invoice.DocNumber)

	result := interfaces.InvoiceResult{
		InvoiceID:     out.Invoice.ID,
		InvoiceNumber: out.Invoice.DocNumber,
	}
	if payload.SendEmail && payload.CustomerEmail != "" {
		sendPath := fmt.Sprintf("/v3/company/%s/invoice/%s/send?sendTo=%s",
			token.RealmID, out.Invoice.ID, url.QueryEscape(payload.CustomerEmail))
		if err := g.doJSON(ctx, token, http.MethodPost, sendPath, nil, nil); err != nil {
			// The invoice exists either way; a failed send is not fatal.
			log.Printf("[invoicing][quickbooks] invoice email send failed qb_invoice_id=%s err=%v", out.Invoice.ID, err)
		} else {
			result.EmailSent = true
		}
	}
	return result, nil
}

func (g *QuickBooksGateway) Status(ctx context.Context) (interfaces.ConnectionStatus, error) {
	token, err := g.store.Load(ctx)
	if err != nil {
		return interfaces.ConnectionStatus{}, err
	}
	if token.IsZero() {
		return interfaces.ConnectionStatus{}, nil
	}

	now := time.Now().UTC()
	accessExp := token.AccessTokenExpiresAt
	return interfaces.ConnectionStatus{
		Connected:            token.RefreshValid(now),
		RealmID:              token.RealmID,
		AccessTokenValid:     token.AccessValid(now),
		RefreshTokenValid:    token.RefreshValid(now),
		AccessTokenExpiresAt: &accessExp,
	}, nil
}

func (g *QuickBooksGateway) Disconnect(ctx context.Context) error {
	log.Printf("[invoicing][quickbooks] disconnecting")
	return g.store.Delete(ctx)
}

// ensureToken returns a token with a usable access token, refreshing it
// through the OAuth endpoint when expired.
func (g *QuickBooksGateway) ensureToken(ctx context.Context) (entities.QuickBooksToken, error) {
	token, err := g.store.Load(ctx)
	if err != nil {
		return entities.QuickBooksToken{}, err
	}

	now := time.Now().UTC()
	if token.IsZero() || !token.RefreshValid(now) {
		return entities.QuickBooksToken{}, interfaces.ErrInvoicingNotConnected
	}
	if token.AccessValid(now) {
		return token, nil
	}
	return g.refreshToken(ctx, token)
}

func (g *QuickBooksGateway) refreshToken(ctx context.Context, token entities.QuickBooksToken) (entities.QuickBooksToken, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return entities.QuickBooksToken{}, interfaces.ErrInvoicingNotConnected
	}
	log.Printf("[invoicing][quickbooks] refreshing access token realm_id=%s", token.RealmID)

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", token.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oauthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return entities.QuickBooksToken{}, err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(g.clientID + ":" + g.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return entities.QuickBooksToken{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		// The refresh token was revoked or expired; the operator must
		// reconnect through the OAuth flow.
		log.Printf("[invoicing][quickbooks] refresh rejected status=%d", resp.StatusCode)
		return entities.QuickBooksToken{}, interfaces.ErrInvoicingNotConnected
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return entities.QuickBooksToken{}, fmt.Errorf("quickbooks token refresh failed: status=%d body=%s", resp.StatusCode, raw)
	}

	var body struct {
		AccessToken           string `json:"access_token"`
		RefreshToken          string `json:"refresh_token"`
		ExpiresIn             int64  `json:"expires_in"`
		RefreshTokenExpiresIn int64  `json:"x_refresh_token_expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entities.QuickBooksToken{}, err
	}

	now := time.Now().UTC()
	token.AccessToken = body.AccessToken
	token.AccessTokenExpiresAt = now.Add(time.Duration(body.ExpiresIn) * time.Second)
	if body.RefreshToken != "" {
		token.RefreshToken = body.RefreshToken
	}
	if body.RefreshTokenExpiresIn > 0 {
		token.RefreshTokenExpiresAt = now.Add(time.Duration(body.RefreshTokenExpiresIn) * time.Second)
	}

	if err := g.store.Save(ctx, token); err != nil {
		return entities.QuickBooksToken{}, err
	}
	return token, nil
}

func (g *QuickBooksGateway) findOrCreateCustomer(ctx context.Context, token entities.QuickBooksToken, payload interfaces.InvoicePayload) (string, error) {
	name := payload.CustomerName
	if name == "" {
		name = payload.PropertyName
	}

	query := fmt.Sprintf("select Id from Customer where DisplayName = '%s'", strings.ReplaceAll(name, "'", "\\'"))
	path := fmt.Sprintf("/v3/company/%s/query?query=%s&minorversion=65", token.RealmID, url.QueryEscape(query))

	var queryOut struct {
		QueryResponse struct {
			Customer []struct {
				ID string `json:"Id"`
			} `json:"Customer"`
		} `json:"QueryResponse"`
	}
	if err := g.doJSON(ctx, token, http.MethodGet, path, nil, &queryOut); err != nil {
		return "", err
	}
	if len(queryOut.QueryResponse.Customer) > 0 {
		return queryOut.QueryResponse.Customer[0].ID, nil
	}

	body := map[string]any{"DisplayName": name}
	if payload.CustomerEmail != "" {
		body["PrimaryEmailAddr"] = map[string]any{"Address": payload.CustomerEmail}
	}
	var createOut struct {
		Customer struct {
			ID string `json:"Id"`
		} `json:"Customer"`
	}
	createPath := fmt.Sprintf("/v3/company/%s/customer?minorversion=65", token.RealmID)
	if err := g.doJSON(ctx, token, http.MethodPost, createPath, body, &createOut); err != nil {
		return "", err
	}
	log.Printf("[invoicing][quickbooks] customer created qb_customer_id=%s name=%s", createOut.Customer.ID, name)
	return createOut.Customer.ID, nil
}

func (g *QuickBooksGateway) doJSON(ctx context.Context, token entities.QuickBooksToken, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return interfaces.ErrInvoicingNotConnected
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("quickbooks request failed: %s %s status=%d body=%s", method, path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
