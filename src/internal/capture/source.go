package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/coreos/go-iptables/iptables"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/errors"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/hashing"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// DefaultTable is the table iptables lists when no -t option is given.
const DefaultTable = "filter"

// Source produces the raw text of one counter table listing.
type Source interface {
	Capture(ctx context.Context) (string, error)
	Describe() string
}

// CommandSource runs `iptables -L -v -n` and returns its output.
type CommandSource struct {
	// Binary defaults to "iptables".
	Binary string
	// Table is passed with -t unless it is empty or "filter".
	Table string
}

// NewCommandSource returns a command source for the given IP version (4 or 6).
func NewCommandSource(ipVersion int, table string) *CommandSource {
	binary := "iptables"
	if ipVersion == 6 {
		binary = "ip6tables"
	}
	return &CommandSource{Binary: binary, Table: table}
}

// Args returns the command line arguments passed to the binary.
func (s *CommandSource) Args() []string {
	args := []string{"-L", "-v", "-n"}
	if s.Table != "" && s.Table != DefaultTable {
		args = append(args, "-t", s.Table)
	}
	return args
}

func (s *CommandSource) binary() string {
	if s.Binary == "" {
		return "iptables"
	}
	return s.Binary
}

// Describe returns the command line that is run.
func (s *CommandSource) Describe() string {
	return s.binary() + " " + strings.Join(s.Args(), " ")
}

// Capture runs the listing command.
func (s *CommandSource) Capture(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, s.binary(), s.Args()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", errors.NewCaptureError(fmt.Sprintf("could not run '%s'", s.Describe()), err)
	}

	return stdout.String(), nil
}

// statsLister is the part of *iptables.IPTables used by IPTablesSource.
type statsLister interface {
	ListChains(table string) ([]string, error)
	Stats(table, chain string) ([][]string, error)
}

// IPTablesSource reads counters through go-iptables and renders them in the
// layout of `iptables -L -v -n`, so both sources feed the same parser.
type IPTablesSource struct {
	ipt   statsLister
	table string
	proto iptables.Protocol
}

// NewIPTablesSource creates a source for the given IP version (4 or 6).
func NewIPTablesSource(ipVersion int, table string) (*IPTablesSource, error) {
	proto := iptables.ProtocolIPv4
	if ipVersion == 6 {
		proto = iptables.ProtocolIPv6
	}

	ipt, err := iptables.NewWithProtocol(proto)
	if err != nil {
		return nil, errors.NewCaptureError("failed to initialize iptables", err)
	}

	if table == "" {
		table = DefaultTable
	}

	return &IPTablesSource{ipt: ipt, table: table, proto: proto}, nil
}

// Describe names the table and protocol being read.
func (s *IPTablesSource) Describe() string {
	family := "IPv4"
	if s.proto == iptables.ProtocolIPv6 {
		family = "IPv6"
	}
	return fmt.Sprintf("go-iptables %s table %s", family, s.table)
}

// Capture lists every chain of the table with its counters.
func (s *IPTablesSource) Capture(ctx context.Context) (string, error) {
	chainNames, err := s.ipt.ListChains(s.table)
	if err != nil {
		return "", errors.NewCaptureError(fmt.Sprintf("failed to list chains of table %s", s.table), err)
	}

	var sb strings.Builder
	for i, chain := range chainNames {
		if err := ctx.Err(); err != nil {
			return "", errors.NewCaptureError("capture cancelled", err)
		}

		rows, err := s.ipt.Stats(s.table, chain)
		if err != nil {
			return "", errors.NewCaptureError(fmt.Sprintf("failed to read counters of chain %s", chain), err)
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		renderChain(&sb, chain, rows)
	}

	return sb.String(), nil
}

// statsHeader is the column header printed under every chain header.
const statsHeader = " pkts bytes target     prot opt in     out     source               destination"

func renderChain(sb *strings.Builder, chain string, rows [][]string) {
	sb.WriteString("Chain " + chain + "\n")
	sb.WriteString(statsHeader + "\n")
	for _, row := range rows {
		sb.WriteString(strings.TrimRight(strings.Join(row, " "), " ") + "\n")
	}
}

// FileSource reads a listing saved earlier, e.g. with `iptables -L -v -n > before.txt`.
type FileSource struct {
	Path string
}

// Describe returns the file path.
func (s *FileSource) Describe() string {
	return s.Path
}

// Capture reads the file.
func (s *FileSource) Capture(_ context.Context) (string, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return "", errors.NewCaptureError(fmt.Sprintf("failed to read listing %s", s.Path), err)
	}
	defer file.Close()

	proxy := hashing.NewMD5ReaderProxy(file)
	content, err := io.ReadAll(proxy)
	if err != nil {
		return "", errors.NewCaptureError(fmt.Sprintf("failed to read listing %s", s.Path), err)
	}
	log.Debugf("Read %d bytes from %s (md5 %s)", proxy.Size(), s.Path, proxy.GetChecksum())

	return string(content), nil
}
