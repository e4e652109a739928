package version

const (
	AppName        = "rolecall"
	AppDescription = "A small Discord bot that greets, reports latency and lists your roles."
)
