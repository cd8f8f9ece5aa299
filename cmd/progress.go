package cmd

import "github.com/pterm/pterm"

// progresser displays a progress bar while the messages are processed
type progresser struct {
	title string
	pbar  *pterm.ProgressbarPrinter
}

func newProgresser(title string) *progresser {
	return &progresser{
		title: title,
	}
}

func (p *progresser) Start(total int) {
	if total == 0 || global.quiet || global.verbose {
		return
	}
	p.pbar, _ = pterm.DefaultProgressbar.WithTotal(total).WithTitle(p.title).Start()
}

func (p *progresser) Increment() {
	if p.pbar == nil {
		return
	}
	p.pbar.Increment()
}

func (p *progresser) Stop() {
	if p.pbar == nil {
		return
	}
	_, _ = p.pbar.Stop()
	p.pbar = nil
}
