package cli

// RunWithWriter runs the CLI with output sent to w
var RunWithWriter = run
