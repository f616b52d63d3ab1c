package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// Verifier submits contract sources to a block explorer.
type Verifier interface {
	Verify(ctx context.Context, apiKey, name, contract string, address common.Address) error
}

// Verify submits the source of a deployed contract. On local networks and
// in dry runs nothing is submitted and a decline message is printed.
func Verify(ctx context.Context, w *World, apiKey, name, contract string, address common.Address) error {
	if w.IsLocalNetwork() {
		w.printer.PrintLine(fmt.Sprintf("Politely declining to verify on local network: %s.", w.network))
		return nil
	}
	if w.verifier == nil {
		return errors.New("scenario: world has no verifier")
	}
	ctxlog.FromContext(ctx).Info("Verifying contract.", "name", name, "contract", contract, "address", address.Hex())
	if err := w.verifier.Verify(ctx, apiKey, name, contract, address); err != nil {
		return errors.Wrapf(err, "verify %s", name)
	}
	w.printer.PrintLine(fmt.Sprintf("Verified %s (%s) at %s", name, contract, address.Hex()))
	return nil
}

// SourceFunc returns the flattened source and compiler version of a
// contract type.
type SourceFunc func(contract string) (source, compiler string, err error)

// EtherscanVerifier verifies through the Etherscan contract API.
type EtherscanVerifier struct {
	BaseURL string
	Client  *http.Client
	Source  SourceFunc
}

type etherscanResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (v *EtherscanVerifier) Verify(ctx context.Context, apiKey, name, contract string, address common.Address) error {
	if v.Source == nil {
		return errors.New("no source provider")
	}
	source, compiler, err := v.Source(contract)
	if err != nil {
		return errors.Wrap(err, "load source")
	}

	form := url.Values{
		"apikey":           {apiKey},
		"module":           {"contract"},
		"action":           {"verifysourcecode"},
		"contractaddress":  {address.Hex()},
		"sourceCode":       {source},
		"contractname":     {contract},
		"compilerversion":  {compiler},
		"optimizationUsed": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := v.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "submit verification")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	var r etherscanResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	if r.Status != "1" {
		return errors.Errorf("etherscan rejected %s: %s: %s", name, r.Message, r.Result)
	}
	return nil
}
