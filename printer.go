package scenario

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Printer is the output sink of a World. It is the only I/O the interpreter
// performs besides chain calls.
type Printer interface {
	PrintLine(line string)
	PrintAction(description string)
	PrintError(err error)
	PrintValue(v Value)
	PrintContracts(rows []ContractRow)
}

// ContractRow is one line of the registered contracts table.
type ContractRow struct {
	Name    string
	Type    string
	Address string
}

// ContractRows lists every registered contract of w.
func ContractRows(w *World) []ContractRow {
	names := w.ContractNames()
	rows := make([]ContractRow, 0, len(names))
	for _, name := range names {
		c, err := w.Contract(name)
		if err != nil {
			continue
		}
		rows = append(rows, ContractRow{Name: name, Type: c.Type(), Address: c.Address().Hex()})
	}
	return rows
}

// ConsolePrinter writes to an io.Writer. Actions are only printed when
// Verbose is set.
type ConsolePrinter struct {
	Out     io.Writer
	Verbose bool
}

// NewConsolePrinter creates a ConsolePrinter writing to out.
func NewConsolePrinter(out io.Writer, verbose bool) *ConsolePrinter {
	return &ConsolePrinter{Out: out, Verbose: verbose}
}

func (p *ConsolePrinter) PrintLine(line string) {
	fmt.Fprintln(p.Out, line)
}

func (p *ConsolePrinter) PrintAction(description string) {
	if p.Verbose {
		fmt.Fprintf(p.Out, "Action: %s\n", description)
	}
}

func (p *ConsolePrinter) PrintError(err error) {
	fmt.Fprintf(p.Out, "Error: %v\n", err)
}

func (p *ConsolePrinter) PrintValue(v Value) {
	fmt.Fprintf(p.Out, "%s\n", v.String())
}

func (p *ConsolePrinter) PrintContracts(rows []ContractRow) {
	table := tablewriter.NewWriter(p.Out)
	table.SetHeader([]string{"Name", "Contract", "Address"})
	for _, r := range rows {
		table.Append([]string{r.Name, r.Type, r.Address})
	}
	table.Render()
}

// CallbackPrinter forwards every line to a function. It is used by tests
// and by embedders that collect output.
type CallbackPrinter struct {
	Fn func(line string)
}

func (p CallbackPrinter) PrintLine(line string)          { p.Fn(line) }
func (p CallbackPrinter) PrintAction(description string) { p.Fn("Action: " + description) }
func (p CallbackPrinter) PrintError(err error)           { p.Fn("Error: " + err.Error()) }
func (p CallbackPrinter) PrintValue(v Value)             { p.Fn(v.String()) }
func (p CallbackPrinter) PrintContracts(rows []ContractRow) {
	for _, r := range rows {
		p.Fn(fmt.Sprintf("%s %s %s", r.Name, r.Type, r.Address))
	}
}

// NopPrinter discards all output.
type NopPrinter struct{}

func (NopPrinter) PrintLine(string)             {}
func (NopPrinter) PrintAction(string)           {}
func (NopPrinter) PrintError(error)             {}
func (NopPrinter) PrintValue(Value)             {}
func (NopPrinter) PrintContracts([]ContractRow) {}
