// Command celotx-sim drives the streaming transaction parser against a
// hex-encoded transaction, optionally split into fixed-size fragments to
// exercise the resumable parsing path the way a constrained host would
// deliver bytes over a slow transport.
//
// Usage:
//
//	celotx-sim -tx <hex> [-config policy.toml] [-fragment-size N] [-ethereum]
package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/celotx/celotx/config"
	celotxlog "github.com/celotx/celotx/log"
	"github.com/celotx/celotx/hash"
	"github.com/celotx/celotx/metrics"
	"github.com/celotx/celotx/parser"
	"github.com/celotx/celotx/token"
	"github.com/celotx/celotx/txtypes"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	logger := celotxlog.New(verbosityToLevel(cfg.Verbosity)).Module("celotx-sim")

	txBytes, err := hex.DecodeString(strings.TrimPrefix(cfg.TxHex, "0x"))
	if err != nil {
		logger.Error("invalid transaction hex", "error", err)
		return 1
	}

	policyCfg := config.Default()
	if cfg.ConfigPath != "" {
		policyCfg, err = config.Load(cfg.ConfigPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			return 1
		}
	}
	if cfg.Ethereum {
		policyCfg.IsEthereum = true
	}

	table, err := policyCfg.TokenTable()
	if err != nil {
		logger.Error("failed to build token table", "error", err)
		return 1
	}

	content := &txtypes.Content{}
	state := &token.State{}
	recognizer := token.NewRecognizer(table, policyCfg.Policy())
	ctx := parser.NewContext(hash.NewKeccak256(), content, recognizer, policyCfg.IsEthereum, state)

	start := time.Now()
	status, err := runParse(ctx, txBytes, cfg.FragmentSize, logger)
	metrics.ParseLatency.Observe(float64(time.Since(start).Microseconds()))
	if err != nil {
		logger.Error("parse error", "error", err)
		metrics.TxFault.Inc()
		return 1
	}

	switch status {
	case parser.StatusFinished:
		metrics.TxFinished.Inc()
		printResult(table, content, state, ctx)
		return 0
	case parser.StatusProcessing:
		logger.Warn("transaction ended with no terminal status (legacy tx with no v/r/s?)")
		return 1
	default:
		logger.Error("unexpected terminal status", "status", status.String())
		return 1
	}
}

// runParse feeds txBytes through ctx, chunked into fragmentSize pieces (or
// delivered whole if fragmentSize <= 0), driving suspensions to
// completion with ResumeTx before requesting more bytes.
func runParse(ctx *parser.Context, txBytes []byte, fragmentSize int, logger *celotxlog.Logger) (parser.Status, error) {
	if fragmentSize <= 0 {
		fragmentSize = len(txBytes)
		if fragmentSize == 0 {
			fragmentSize = 1
		}
	}

	offset := 0
	end := fragmentSize
	if end > len(txBytes) {
		end = len(txBytes)
	}
	status, err := parser.ProcessTx(ctx, txBytes[offset:end])
	metrics.FragmentsFed.Inc()
	offset = end

	for {
		if err != nil {
			return status, err
		}
		switch status {
		case parser.StatusSuspended:
			logger.Info("parser suspended", "field", ctx.CurrentField().String())
			metrics.TxSuspended.Inc()
			status, err = parser.ResumeTx(ctx)
		case parser.StatusProcessing:
			if offset >= len(txBytes) {
				return status, nil
			}
			end := offset + fragmentSize
			if end > len(txBytes) {
				end = len(txBytes)
			}
			status, err = parser.ContinueTx(ctx, txBytes[offset:end])
			metrics.FragmentsFed.Inc()
			offset = end
		default:
			return status, nil
		}
	}
}

func printResult(table *token.Table, content *txtypes.Content, state *token.State, ctx *parser.Context) {
	tok, isToken := token.FinalizeToken(table, state, content)
	ticker, decimals, err := token.ResolveFeeCurrency(table, content)
	if err != nil {
		ticker, decimals = "?", 0
	}

	fmt.Printf("destination:       %s\n", content.Destination.String())
	fmt.Printf("value:              %s\n", content.Value.Hex())
	if isToken {
		fmt.Printf("token:              %s (%d decimals)\n", tok.Ticker, tok.Decimals)
	}
	fmt.Printf("gateway recipient:  %s\n", content.GatewayDestination.String())
	fmt.Printf("gateway fee:        %s %s\n", content.GatewayFee.Hex(), ticker)
	fmt.Printf("gas price:          %s\n", content.GasPrice.Hex())
	fmt.Printf("start gas:          %s\n", content.StartGas.Hex())
	fmt.Printf("fee currency:       %s (%d decimals)\n", ticker, decimals)
	fmt.Printf("data present:       %v\n", content.DataPresent)
	fmt.Printf("v:                  %x\n", content.V[:content.VLength])

	digest := ctxHash(ctx)
	fmt.Printf("tx hash:            0x%x\n", digest)
}

// ctxHash finalizes the context's running hash. It is only ever called
// once a transaction has reached StatusFinished.
func ctxHash(ctx *parser.Context) [32]byte {
	return ctx.Hasher().Sum32()
}

func verbosityToLevel(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
