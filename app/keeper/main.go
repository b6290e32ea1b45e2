package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/app/bootstrap"
	"github.com/x-xyz/goauction/base/amount"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/stores/auction/keeper"
)

var cliName = "keeper"

type flag struct {
	name        string
	key         string
	defValue    string
	description string
}

var flags = []flag{
	{"config", "", "infra/configs/config.yaml", "config file"},
	{"address", "keeper.address", "", "address recorded as the settling caller"},
	{"schedule", "keeper.schedule", keeper.DefaultSchedule, "cron schedule with seconds"},
}

func init() {
	_ = godotenv.Load(".env")

	rootCmd.AddCommand(runCmd, statusCmd, settleCmd)
	bindFlags(rootCmd.PersistentFlags())

	cobra.OnInitialize(func() {
		viper.SetConfigType("yaml")
		viper.SetConfigFile(viper.GetString("config"))
		viper.SetEnvPrefix("AUCTION")
		viper.AutomaticEnv()
		if err := viper.ReadInConfig(); err != nil {
			log.Log().WithField("err", err).Warn("config not loaded")
		}
		log.SetDebug(viper.GetBool("debug"))
	})
}

func bindFlags(fs *pflag.FlagSet) {
	for _, f := range flags {
		fs.String(f.name, f.defValue, f.description)
		key := f.key
		if key == "" {
			key = f.name
		}
		if err := viper.BindPFlag(key, fs.Lookup(f.name)); err != nil {
			panic(err)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "Keeper settles expired auctions",
	Long: `Keeper settles expired auctions.

It shares the config file of the api and talks to the same storage, so it may
run next to the api or instead of the embedded keeper.
`,
	Args: cobra.ExactArgs(0),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the settle job on its schedule until interrupted",
	Args:  cobra.ExactArgs(0),
	RunE: func(_ *cobra.Command, _ []string) error {
		c := ctx.Background()
		app, err := bootstrap.New(c)
		if err != nil {
			return err
		}
		defer app.Close(c)

		k, err := keeper.New(keeper.KeeperCfg{
			Auction:  app.Auction,
			Address:  domain.Address(viper.GetString("keeper.address")),
			Schedule: viper.GetString("keeper.schedule"),
			Timeout:  viper.GetDuration("context.timeout"),
		})
		if err != nil {
			return err
		}
		k.Start()
		c.WithField("next", humanize.Time(k.Next())).Info("keeper running")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		sig := <-quit
		c.WithField("signal", sig).Info("received signal")
		k.Stop()
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the auction status",
	Args:  cobra.ExactArgs(0),
	RunE: func(_ *cobra.Command, _ []string) error {
		c := ctx.Background()
		app, err := bootstrap.New(c)
		if err != nil {
			return err
		}
		defer app.Close(c)

		s, err := app.Auction.Status(c)
		if err != nil {
			return err
		}
		printStatus(s)
		return nil
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle the auction now if it has expired",
	Args:  cobra.ExactArgs(0),
	RunE: func(_ *cobra.Command, _ []string) error {
		c := ctx.Background()
		app, err := bootstrap.New(c)
		if err != nil {
			return err
		}
		defer app.Close(c)

		k, err := keeper.New(keeper.KeeperCfg{
			Auction: app.Auction,
			Address: domain.Address(viper.GetString("keeper.address")),
		})
		if err != nil {
			return err
		}
		settled, err := k.Tick(c)
		if err != nil {
			return err
		}
		if !settled {
			fmt.Println("nothing to settle")
			return nil
		}
		fmt.Println("settled")
		return nil
	},
}

func printStatus(s *auction.Status) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "phase\t%s\n", s.Phase)
	if s.Round != "" {
		fmt.Fprintf(w, "round\t%s\n", s.Round)
	}
	fmt.Fprintf(w, "beneficiary\t%s\n", s.Config.Beneficiary)
	fmt.Fprintf(w, "min increase\t%s bps\n", humanize.Comma(s.Config.MinBidIncreaseBps))
	if s.Deadline != nil {
		fmt.Fprintf(w, "deadline\t%s (%s)\n", s.Deadline.Format("2006-01-02 15:04:05 MST"), humanize.Time(*s.Deadline))
	}
	if s.TopBidder != nil {
		fmt.Fprintf(w, "top bidder\t%s\n", *s.TopBidder)
		fmt.Fprintf(w, "top bid\t%s wei (%s ether)\n", humanize.BigComma(s.TopBid), amount.ToEther(s.TopBid))
	}
	if s.MinimumBid != nil {
		fmt.Fprintf(w, "minimum bid\t%s wei (%s ether)\n", humanize.BigComma(s.MinimumBid), amount.ToEther(s.MinimumBid))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
