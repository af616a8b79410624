package util

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/nipart/nipart-go/ipc/client"
	"github.com/nipart/nipart-go/ipc/common"
	"github.com/nipart/nipart-go/ipc/transport"
	"github.com/nipart/nipart-go/ipc/transport/unix"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupIPCClientFlags adds common daemon connection flags to a command
func SetupIPCClientFlags(cmd *cobra.Command) {
	key := "socket"
	cmd.PersistentFlags().String(key, common.DefaultSocketPath, WrapString("The unix socket path of the nipart daemon"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 30, WrapString("Per-frame read/write timeout in seconds, 0 blocks forever"))

	key = "strict-kinds"
	cmd.PersistentFlags().Bool(key, false, WrapString("Reject replies whose kind differs from the request kind"))

	key = "socket-read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("Kernel read buffer size for the socket (in KB, 0 keeps the system default)"))

	key = "socket-write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("Kernel write buffer size for the socket (in KB, 0 keeps the system default)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("nipart")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		SocketPath:    viper.GetString("socket"),
		TimeoutSecond: viper.GetInt("timeout"),
		StrictKinds:   viper.GetBool("strict-kinds"),
		Socket: common.SocketConf{
			ReadBufferSize:  viper.GetInt("socket-read-buffer") * 1024,
			WriteBufferSize: viper.GetInt("socket-write-buffer") * 1024,
		},
	}
}

// GetTransport creates the client transport. The daemon only listens on
// a unix socket, so there is nothing to select.
func GetTransport() transport.IIPCClientTransport {
	return unix.NewUnixClientTransport()
}

// NewClient initializes logging and connects a client per configuration
func NewClient() (*client.Client, error) {
	common.InitLoggers(viper.GetString("log-level"))
	return client.New(*GetClientConfig(), GetTransport())
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
