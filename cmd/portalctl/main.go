// portalctl is the operator companion for the portal: it keeps a local
// logged-in session (file-backed, surviving restarts) and offers account
// management against the same data stores the server uses.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
	"github.com/protolab/portal-api/internal/core/service"
	"github.com/protolab/portal-api/internal/infrastructure/db/bolt"
	"github.com/protolab/portal-api/internal/infrastructure/db/mongo"
	"github.com/protolab/portal-api/internal/infrastructure/db/redis"
	"github.com/protolab/portal-api/internal/pkg/config"
	"github.com/protolab/portal-api/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var storeBackend string

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Protolab portal operator tool",
	Long: `portalctl manages a local operator session against the portal's
data stores. The session identifier is persisted, so a logged-in
operator stays logged in across invocations. The identifier lives in a
local file by default; --store=redis shares it across machines.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "file", "identifier store backend: file or redis")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(signupCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	signupCmd.Flags().String("email", "", "account email")
	signupCmd.Flags().String("password", "", "account password")
	signupCmd.Flags().String("name", "", "display name")
	signupCmd.Flags().String("company", "", "company name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("name")
}

// newIdentifierStore picks the store backend: a local bbolt file by
// default, or the shared Redis store when --store=redis.
func newIdentifierStore(ctx context.Context, cfg *config.Config) (ports.IdentifierStore, func(), error) {
	switch storeBackend {
	case "file":
		store, err := bolt.Open(cfg.Local.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return redis.NewTokenStore(rdb, "portalctl"), func() { _ = rdb.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", storeBackend)
}

// newSessionManager wires a SessionManager against Mongo and the chosen
// identifier store, then resolves any persisted identity.
func newSessionManager(ctx context.Context) (*service.SessionManager, func(), error) {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: "warn", Pretty: true})

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: %w", err)
	}

	store, closeStore, err := newIdentifierStore(ctx, cfg)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		closeStore()
		_ = client.Disconnect(context.Background())
	}

	manager := service.NewSessionManager(mongo.NewUserRepository(db), store, log)
	if err := manager.Initialize(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return manager, cleanup, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		ctx := cmd.Context()
		manager, cleanup, err := newSessionManager(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := manager.Login(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		manager, cleanup, err := newSessionManager(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		manager.Logout(ctx)
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current persisted identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		manager, cleanup, err := newSessionManager(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		s := manager.Session()
		if !s.IsAuthenticated() {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s", s.Identity.Name, s.Identity.Email, s.Identity.Role)
		if s.Identity.CompanyName != "" {
			fmt.Printf(" company=%q", s.Identity.CompanyName)
		}
		fmt.Println()
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a customer account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		company, _ := cmd.Flags().GetString("company")

		ctx := cmd.Context()
		manager, cleanup, err := newSessionManager(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := manager.SignUp(ctx, email, password, name, company)
		if err != nil {
			return err
		}
		if user.Role != domain.RoleCustomer {
			return fmt.Errorf("unexpected role %q", user.Role)
		}
		fmt.Printf("Account created for %s\n", user.Email)
		return nil
	},
}
