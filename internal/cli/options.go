package cli

type Options struct {
	JSON   bool
	Tab    string
	Search string
}
