package local

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdUtil "shelfd/cmd/util"
	"shelfd/lib/audit"
	"shelfd/lib/library"
	"shelfd/protocol/common"
	"shelfd/protocol/engine"
)

// loanPeriod is the due period stamped onto borrows made through the offline
// dialogue. Deliberately longer than the networked default.
const loanPeriod = 14 * 24 * time.Hour

var LocalCmd = &cobra.Command{
	Use:     "local",
	Short:   "Run the library dialogue on stdin/stdout",
	Long:    `Run the library dialogue directly on stdin/stdout, without a server. The same state machine as the networked server is driven by one local session against the same JSON collection files.`,
	PreRunE: processConfig,
	RunE:    run,
}

var localConfig = &common.ServerConfig{}

func init() {
	cobra.OnInitialize(cmdUtil.InitConfig)

	key := "data-dir"
	LocalCmd.PersistentFlags().String(key, "resources/database", cmdUtil.WrapString("Directory holding the JSON collection files (created and bootstrapped on first use)"))

	key = "log-level"
	LocalCmd.PersistentFlags().String(key, "warn", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	localConfig.DataDir = viper.GetString("data-dir")
	localConfig.LogLevel = viper.GetString("log-level")

	common.InitLoggers(*localConfig)
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	dir := localConfig.DataDir

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
	transactions, err := library.NewTransactionStore(dir, 0)
	if err != nil {
		return err
	}
	audits, err := library.NewAuditStore(dir)
	if err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	sessions := engine.NewSessionTable()
	auditLogger := audit.NewLogger(audits)
	defer auditLogger.Close()

	eng := engine.New(books, users, categories, transactions, sessions, loanPeriod)

	// One fixed session for the whole process. An empty first line makes the
	// engine print the entry menu.
	const sessionID = "local"
	fmt.Print(eng.Handle(sessionID, ""))

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		auditLogger.LogAsync(library.AuditEntry{
			ClientIP:    "local",
			MachineName: hostname,
			Action:      "Request",
			Description: line,
		})

		resp := eng.Handle(sessionID, line)
		fmt.Println(resp)

		// Choosing exit at the entry menu ends the dialogue. Logout merely
		// drops the session; the next line starts a fresh one.
		if resp == "Goodbye." {
			return scanner.Err()
		}
	}
	return scanner.Err()
}
