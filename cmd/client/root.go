package client

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "shelfd/cmd/util"
	"shelfd/protocol/common"
	"shelfd/protocol/transport/base"
)

// readBufferSize bounds a single server response. Responses are at most a
// menu plus a result listing, well under this.
const readBufferSize = 64 * 1024

var ClientCmd = &cobra.Command{
	Use:     "client",
	Short:   "Connect to a shelfd server",
	Long:    `Connect to a shelfd server and relay the dialogue between stdin/stdout and the connection: every line typed is sent to the server, every response is printed.`,
	PreRunE: processConfig,
	RunE:    run,
}

var clientConfig = &common.ClientConfig{}

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	key := "endpoint"
	ClientCmd.PersistentFlags().String(key, "127.0.0.1:8080", cmdUtil.WrapString("The address of the server (host:port for tcp, a file path for unix)"))

	key = "transport"
	ClientCmd.PersistentFlags().String(key, "tcp", cmdUtil.WrapString("Transport to use (tcp, unix)"))

	key = "timeout"
	ClientCmd.PersistentFlags().Int(key, 5, cmdUtil.WrapString("Connect and response timeout in seconds (0 = none)"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	clientConfig.Endpoint = viper.GetString("endpoint")
	clientConfig.Transport = viper.GetString("transport")
	clientConfig.TimeoutSecond = viper.GetInt("timeout")
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	conn, err := base.Dial(*clientConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", clientConfig.Endpoint, err)
	}
	defer func() { _ = conn.Close() }()

	fmt.Printf("Connected to %s\n", clientConfig.Endpoint)

	buffer := make([]byte, readBufferSize)
	scanner := bufio.NewScanner(os.Stdin)

	// The server speaks only when spoken to: an empty first line fetches the
	// entry menu.
	if err := roundTrip(conn, "", buffer); err != nil {
		return err
	}
	for scanner.Scan() {
		if err := roundTrip(conn, scanner.Text(), buffer); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// roundTrip sends one request line and prints the server's response.
func roundTrip(conn net.Conn, line string, buffer []byte) error {
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if clientConfig.TimeoutSecond > 0 {
		deadline := time.Now().Add(time.Duration(clientConfig.TimeoutSecond) * time.Second)
		if err := conn.SetReadDeadline(deadline); err != nil {
			return err
		}
	}

	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("connection closed: %w", err)
	}
	fmt.Println(strings.TrimRight(string(buffer[:n]), "\n"))
	return nil
}
