package attest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/base-org/linksigner/digest"
	"github.com/base-org/linksigner/hexbytes"
)

// WriteReport writes the diagnostic record as a table.
func WriteReport(w io.Writer, att *Attestation) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Field", "Value"})
	tw.AppendRows([]table.Row{
		{"Eth address", att.Address.Hex()},
		{"Public key", hexbytes.Encode0x(att.PublicKey)},
		{"Target address", hexbytes.Encode0x(att.Target)},
		{"Strategy", att.Strategy.String()},
	})
	if att.Strategy == digest.Passthrough || att.Strategy == digest.PersonalPrefix {
		tw.AppendRow(table.Row{"Message prefix", fmt.Sprintf("%q", digest.MessagePrefix)})
	}
	tw.AppendRows([]table.Row{
		{"Digest", hexbytes.Encode0x(att.Digest)},
		{"Signed hash", hexbytes.Encode0x(att.SignedHash)},
		{"Signature", hexbytes.Encode0x(att.Signature)},
		{"r", hexbytes.Encode0x(att.Components.R[:])},
		{"s", hexbytes.Encode0x(att.Components.S[:])},
		{"v (raw)", att.Components.V},
		{"Recovery id", att.Components.RecoveryID},
	})
	if _, err := io.WriteString(w, tw.Render()+"\n"); err != nil {
		return err
	}
	return nil
}

// MoveFragment returns byte-string literals for a Move verifier test.
func MoveFragment(att *Attestation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "let eth_address = x\"%s\";\n", hexbytes.Encode(att.Address.Bytes()))
	fmt.Fprintf(&b, "let aptos_address = x\"%s\";\n", hexbytes.Encode(att.Target))
	fmt.Fprintf(&b, "let signature_bytes = x\"%s\";\n", hexbytes.Encode(att.Components.RS()))
	fmt.Fprintf(&b, "let recovery_id = %du8;\n", att.Components.RecoveryID)
	return b.String()
}

// WriteJSON writes att as an indented JSON document.
func WriteJSON(w io.Writer, att *Attestation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(att)
}
