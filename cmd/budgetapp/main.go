// Command budgetapp is a command-line front end for the account layer:
// registration, login, lockout status and the credential recovery flows.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/auth"
	"github.com/marcus-gray/budgetapp/internal/config"
	"github.com/marcus-gray/budgetapp/internal/db"
	"github.com/marcus-gray/budgetapp/internal/repository"
)

const usage = `usage: budgetapp <command> [flags]

commands:
  register        create an account (prompts for details)
  login           authenticate and report session info
  status          show lockout and token state for an identifier
  request-reset   request a password reset token
  reset           redeem a reset token and set a new password
  issue-bypass    issue an emergency unlock token
  unlock          redeem an emergency unlock token
  unlock-all      clear every active lockout
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	users := repository.NewUserRepository(conn)

	authCfg := auth.DefaultConfig()
	authCfg.MaxLoginAttempts = cfg.MaxLoginAttempts
	authCfg.LockoutDuration = cfg.LockoutDuration
	authCfg.ResetTokenTTL = cfg.ResetTokenTTL
	authCfg.BypassTokenTTL = cfg.BypassTokenTTL
	authCfg.SessionTimeout = cfg.SessionTimeout

	svc, err := auth.New(authCfg, auth.Deps{
		Users:      users,
		Categories: users,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("build auth service", zap.Error(err))
	}

	in := bufio.NewReader(os.Stdin)
	run(ctx, svc, in, flag.Arg(0))
}

func run(ctx context.Context, svc *auth.Service, in *bufio.Reader, command string) {
	switch command {
	case "register":
		username := prompt(in, "Username: ")
		email := prompt(in, "Email: ")
		pw := prompt(in, "Password: ")
		confirm := prompt(in, "Confirm password: ")
		res := svc.Register(ctx, username, email, pw, confirm)
		report(res.OK, res.Message)

	case "login":
		id := prompt(in, "Username or email: ")
		pw := prompt(in, "Password: ")
		res := svc.Login(ctx, id, pw)
		report(res.OK, res.Message)
		if res.OK {
			sess := svc.CurrentSession()
			fmt.Printf("Session started at %s\n", sess.LoginTime.Format(time.RFC3339))
		}

	case "status":
		id := prompt(in, "Username or email: ")
		st := svc.AccountStatus(id)
		fmt.Printf("Identifier:         %s\n", st.Identifier)
		fmt.Printf("Locked:             %v\n", st.Locked)
		if st.Locked {
			fmt.Printf("Lockout remaining:  %s\n", st.LockoutRemaining.Round(time.Second))
		}
		fmt.Printf("Failed attempts:    %d\n", st.FailedAttempts)
		fmt.Printf("Attempts remaining: %d\n", st.AttemptsRemaining)
		fmt.Printf("Live reset tokens:  %d\n", st.LiveResetTokens)
		fmt.Printf("Live unlock tokens: %d\n", st.LiveBypassTokens)

	case "request-reset":
		id := prompt(in, "Username or email: ")
		res := svc.RequestPasswordReset(ctx, id)
		report(res.OK, res.Message)
		if res.Token != "" {
			fmt.Printf("Token: %s\n", res.Token)
		}

	case "reset":
		token := prompt(in, "Reset token: ")
		pw := prompt(in, "New password: ")
		confirm := prompt(in, "Confirm password: ")
		res := svc.ResetPassword(ctx, token, pw, confirm)
		report(res.OK, res.Message)

	case "issue-bypass":
		id := prompt(in, "Username or email: ")
		reason := prompt(in, "Reason: ")
		res := svc.IssueBypassToken(ctx, id, reason)
		report(res.OK, res.Message)
		if res.Token != "" {
			fmt.Printf("Token: %s\n", res.Token)
		}

	case "unlock":
		token := prompt(in, "Unlock token: ")
		res := svc.ConsumeBypassToken(ctx, token)
		report(res.OK, res.Message)

	case "unlock-all":
		reason := prompt(in, "Reason: ")
		res, count := svc.EmergencyUnlockAll(reason)
		report(res.OK, fmt.Sprintf("%s (%d)", res.Message, count))

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func report(ok bool, message string) {
	fmt.Println(message)
	if !ok {
		os.Exit(1)
	}
}
