package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/base-org/linksigner/attest"
	"github.com/base-org/linksigner/config"
	"github.com/base-org/linksigner/digest"
)

func main() {
	// Define the flags and parse them. Flags override the environment.
	var envFile string
	var privateKey string
	var mnemonic string
	var hdPath string
	var target string
	var strategy string
	var format string

	flag.StringVar(&envFile, "env-file", "", fmt.Sprintf("File to read environment variables from (default %s when present)", config.DefaultEnvFile))
	flag.StringVar(&privateKey, "private-key", "", "Hex private key to sign with (env PRIVATE_KEY_HEX)")
	flag.StringVar(&mnemonic, "mnemonic", "", "Mnemonic to derive the signing key from (env MNEMONIC)")
	flag.StringVar(&hdPath, "hd-path", "", "Hierarchical deterministic derivation path for mnemonic (env HD_PATH)")
	flag.StringVar(&target, "target", "", "Hex foreign-chain address to attest to (env TARGET_ADDRESS_HEX)")
	flag.StringVar(&strategy, "strategy", "", fmt.Sprintf("Digest strategy, one of: %s (env DIGEST_STRATEGY)", strings.Join(digest.Names(), ", ")))
	flag.StringVar(&format, "format", "", "Output format, text or json (env OUTPUT_FORMAT)")
	flag.Parse()

	// Bootstrap logging until the configured level is known.
	log.SetDefault(oplog.NewLogger(os.Stderr, oplog.DefaultCLIConfig()))

	cfg, err := config.Load(envFile)
	if err != nil {
		log.Crit("Error loading configuration", "error", err)
	}
	if err := validateSignerOptions(privateKey, mnemonic); err != nil {
		log.Crit("Invalid signer options", "error", err)
	}
	applyFlags(cfg, privateKey, mnemonic, hdPath, target, strategy, format)

	logCfg := oplog.DefaultCLIConfig()
	logCfg.Level = cfg.Level()
	log.SetDefault(oplog.NewLogger(os.Stderr, logCfg))

	if err := cfg.Validate(); err != nil {
		log.Crit("Invalid configuration", "error", err)
	}

	att, err := buildAttestation(cfg)
	if err != nil {
		log.Crit("Error building attestation", "error", err)
	}
	log.Info("Attestation signed", "address", att.Address, "strategy", att.Strategy, "recovery_id", att.Components.RecoveryID)

	if err := writeOutput(os.Stdout, cfg.OutputFormat, att); err != nil {
		log.Crit("Error writing output", "error", err)
	}
}

// Validates that at most one signer flag is provided. Flags may be omitted
// entirely when the key source comes from the environment.
func validateSignerOptions(privateKey, mnemonic string) error {
	options := 0
	if privateKey != "" {
		options++
	}
	if mnemonic != "" {
		options++
	}
	if options > 1 {
		return errors.Wrap(config.ErrInvalidConfig, "only one of --private-key, --mnemonic may be set")
	}
	return nil
}

// applyFlags overrides configuration values with flags that were set.
// A key flag replaces whichever key source the environment configured.
func applyFlags(cfg *config.Config, privateKey, mnemonic, hdPath, target, strategy, format string) {
	if privateKey != "" {
		cfg.PrivateKeyHex = privateKey
		cfg.Mnemonic = ""
	}
	if mnemonic != "" {
		cfg.Mnemonic = mnemonic
		cfg.PrivateKeyHex = ""
	}
	if hdPath != "" {
		cfg.HDPath = hdPath
	}
	if target != "" {
		cfg.TargetAddressHex = target
	}
	if strategy != "" {
		cfg.DigestStrategy = strategy
	}
	if format != "" {
		cfg.OutputFormat = strings.ToLower(format)
	}
}

// buildAttestation runs the signing pipeline for a validated configuration.
func buildAttestation(cfg *config.Config) (*attest.Attestation, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}

	target, err := attest.ParseTarget(cfg.TargetAddressHex)
	if err != nil {
		return nil, err
	}

	s, err := cfg.Signer()
	if err != nil {
		return nil, err
	}
	log.Debug("Signer ready", "address", s.Address(), "target_len", len(target))

	return attest.Build(attest.Request{
		Signer:   s,
		Target:   target,
		Strategy: strategy,
	})
}

// writeOutput prints the attestation in the requested format.
func writeOutput(w io.Writer, format string, att *attest.Attestation) error {
	if format == "json" {
		return attest.WriteJSON(w, att)
	}
	if err := attest.WriteReport(w, att); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n// Verifier fixture\n%s", attest.MoveFragment(att))
	return err
}
