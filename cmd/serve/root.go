package serve

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "shelfd/cmd/util"
	"shelfd/lib/audit"
	"shelfd/lib/library"
	"shelfd/protocol/common"
	"shelfd/protocol/engine"
	"shelfd/protocol/server"
	"shelfd/protocol/transport"
	"shelfd/protocol/transport/tcp"
	"shelfd/protocol/transport/unix"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the shelfd server",
		Long:    `Start the shelfd server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is SHELFD_<flag> (e.g. SHELFD_DATA_DIR=/var/lib/shelfd)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server will listen (host:port for tcp, a file path for unix)"))

	key = "transport"
	ServeCmd.PersistentFlags().String(key, "tcp", cmdUtil.WrapString("Transport to use (tcp, unix)"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "resources/database", cmdUtil.WrapString("Directory holding the JSON collection files (created and bootstrapped on first use)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Per-read/write deadline for client connections in seconds (0 = no deadline)"))

	key = "loan-days"
	ServeCmd.PersistentFlags().Int(key, library.DefaultLoanDays, cmdUtil.WrapString("Loan period in days stamped onto borrows made over the network"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 1, cmdUtil.WrapString("Per-request read buffer size in KB - longer request lines are truncated"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Socket write buffer size in KB (0 = OS default)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval in seconds (only for tcp)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The linger time in seconds (only for tcp)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the Prometheus metrics HTTP endpoint (empty = disabled)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Transport = viper.GetString("transport")
	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.LoanDays = viper.GetInt("loan-days")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Socket = common.SocketConf{
		ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
		WriteBufferSize: viper.GetInt("write-buffer") * 1024,
	}
	serveCmdConfig.TCP = common.TCPConf{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
	}

	common.InitLoggers(*serveCmdConfig)
	return nil
}

// run starts the shelfd server
func run(_ *cobra.Command, _ []string) error {

	// Parse the transport
	var t transport.IServerTransport
	switch serveCmdConfig.Transport {
	case "tcp":
		t = tcp.NewTCPServerTransport()
	case "unix":
		t = unix.NewUnixServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", serveCmdConfig.Transport)
	}

	// Open the collection stores
	dir := serveCmdConfig.DataDir
	books, err := library.NewBookStore(dir)
	if err != nil {
		return err
	}
	users, err := library.NewUserStore(dir)
	if err != nil {
		return err
	}
	categories, err := library.NewCategoryStore(dir)
	if err != nil {
		return err
	}
	transactions, err := library.NewTransactionStore(dir, serveCmdConfig.LoanDays)
	if err != nil {
		return err
	}
	audits, err := library.NewAuditStore(dir)
	if err != nil {
		return err
	}

	sessions := engine.NewSessionTable()
	auditLogger := audit.NewLogger(audits)
	defer auditLogger.Close()

	// The networked flow leaves the due date to the transaction store, which
	// stamps the configured loan period.
	eng := engine.New(books, users, categories, transactions, sessions, 0)

	serv := server.NewLibraryServer(
		*serveCmdConfig,
		t,
		eng,
		sessions,
		auditLogger,
	)

	return serv.Serve()
}
