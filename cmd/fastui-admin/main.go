// Command fastui-admin runs a demo admin server over a small blog schema.
// It is the quickest way to see the generated interface against a real
// database: `fastui-admin serve --dsn file:demo.db`.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"

	fastuiadmin "github.com/hasansezertasan/fastui-admin"
	"github.com/hasansezertasan/fastui-admin/pkg/config"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
)

// User is one of the demo models managed by the admin.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Username  string    `bun:"username,notnull"`
	Email     string    `bun:"email,notnull"`
	IsActive  bool      `bun:"is_active,default:true"`
	CreatedAt time.Time `bun:"created_at,nullzero"`
}

// Post is the second demo model, referencing User by id.
type Post struct {
	bun.BaseModel `bun:"table:posts"`

	ID          int64     `bun:"id,pk,autoincrement"`
	AuthorID    int64     `bun:"author_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Body        string    `bun:"body,type:text"`
	Published   bool      `bun:"published,default:false"`
	PublishedAt time.Time `bun:"published_at,nullzero"`
}

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fastui-admin",
		Short:         "Auto-generated admin interface for bun models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	root.AddCommand(serveCmd())
	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo admin over a blog schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("listen", "", "listen address")
	cmd.Flags().String("driver", "", "database driver (sqlite, postgres, mysql)")
	cmd.Flags().String("dsn", "", "database DSN")
	cmd.Flags().String("title", "", "admin interface title")
	cmd.Flags().String("base-url", "", "mount path for the admin")
	return cmd
}

// loadConfig layers flag values and FASTUI_ADMIN_* environment variables
// over the optional config file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	v := viper.New()
	v.SetEnvPrefix("FASTUI_ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"listen", "driver", "dsn", "title", "base-url"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return config.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if s := v.GetString("listen"); s != "" {
		cfg.Listen = s
	}
	if s := v.GetString("driver"); s != "" {
		cfg.Database.Driver = s
	}
	if s := v.GetString("dsn"); s != "" {
		cfg.Database.DSN = s
	}
	if s := v.GetString("title"); s != "" {
		cfg.Title = s
	}
	if s := v.GetString("base-url"); s != "" {
		cfg.BaseURL = s
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := session.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := setupSchema(ctx, db); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	admin, err := fastuiadmin.New(e, db, cfg.AdminOptions()...)
	if err != nil {
		return err
	}
	if _, err := admin.AddModel((*User)(nil), cfg.Model("user").ViewOptions()...); err != nil {
		return err
	}
	if _, err := admin.AddModel((*Post)(nil), cfg.Model("post").ViewOptions()...); err != nil {
		return err
	}
	if err := admin.Mount(); err != nil {
		return err
	}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(302, admin.BaseURL()+"/")
	})

	log.Printf("admin available at http://localhost%s%s/", cfg.Listen, admin.BaseURL())
	return e.Start(cfg.Listen)
}

// setupSchema creates the demo tables and seeds a first user so the list
// pages are not empty on first run.
func setupSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*User)(nil), (*Post)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	count, err := db.NewSelect().Model((*User)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := &User{Username: "admin", Email: "admin@example.com", IsActive: true, CreatedAt: time.Now()}
	if _, err := db.NewInsert().Model(seed).Exec(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}
