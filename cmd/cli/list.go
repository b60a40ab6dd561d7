package main

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const listDescription = `
This command lists the certificate artifacts previously fetched into an output
directory, with the common name, serial number and expiry parsed from each
certificate. Private key files are never read.
`

type listCmd struct {
	out io.Writer
	dir string
}

func newListCmd(out io.Writer) *cobra.Command {
	lc := &listCmd{out: out}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list fetched certificate artifacts",
		Long:  listDescription,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return lc.run()
		},
	}

	cmd.Flags().StringVar(&lc.dir, "output-dir", ".", "directory to scan for PEM artifacts")

	return cmd
}

func (lc *listCmd) run() error {
	entries, err := os.ReadDir(lc.dir)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", lc.dir)
	}

	table := tablewriter.NewWriter(lc.out)
	table.SetHeader([]string{"File", "Common Name", "Serial", "Not After"})
	table.SetAutoWrapText(false)

	rows := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".pem") || strings.HasSuffix(name, "-key.pem") {
			continue
		}

		cert, err := readLeafCertificate(filepath.Join(lc.dir, name))
		if err != nil {
			continue
		}

		table.Append([]string{
			name,
			cert.Subject.CommonName,
			formatSerial(cert.SerialNumber),
			cert.NotAfter.UTC().Format(time.RFC3339),
		})
		rows++
	}

	if rows == 0 {
		fmt.Fprintf(lc.out, "No certificate artifacts found in %s\n", lc.dir)
		return nil
	}

	table.Render()
	return nil
}

// readLeafCertificate parses the first CERTIFICATE block of a PEM file.
func readLeafCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, errors.Errorf("no certificate in %s", path)
	}

	return x509.ParseCertificate(block.Bytes)
}

// formatSerial renders a serial number in the colon-separated hex form the
// backend reports.
func formatSerial(sn *big.Int) string {
	hexStr := fmt.Sprintf("%x", sn)
	if len(hexStr)%2 == 1 {
		hexStr = "0" + hexStr
	}

	var pairs []string
	for i := 0; i < len(hexStr); i += 2 {
		pairs = append(pairs, hexStr[i:i+2])
	}
	return strings.Join(pairs, ":")
}
