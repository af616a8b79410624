package cmd

import (
	"fmt"
	"os"
	"time"

	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/nipart/nipart-go/cmd/util"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Measure ping round-trip times against the daemon",
	RunE:  runPerf,
}

func init() {
	key := "count"
	perfCmd.Flags().Int(key, 100, util.WrapString("Number of ping round-trips to measure"))
	key = "show-metrics"
	perfCmd.Flags().Bool(key, false, util.WrapString("Dump the client's Prometheus metrics after the run"))
}

func runPerf(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	count := viper.GetInt("count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	cli, err := util.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())

	// Warm up the connection before timing
	if _, err := cli.Ping(); err != nil {
		return err
	}

	timer := gometrics.NewTimer()
	for i := 0; i < count; i++ {
		start := time.Now()
		if _, err := cli.Ping(); err != nil {
			return fmt.Errorf("ping %d/%d failed: %w", i+1, count, err)
		}
		timer.Update(time.Since(start))
	}

	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("Round-trips : %d\n", timer.Count())
	fmt.Printf("Mean        : %s\n", time.Duration(int64(timer.Mean())))
	fmt.Printf("p50         : %s\n", time.Duration(int64(ps[0])))
	fmt.Printf("p95         : %s\n", time.Duration(int64(ps[1])))
	fmt.Printf("p99         : %s\n", time.Duration(int64(ps[2])))
	fmt.Printf("Max         : %s\n", time.Duration(timer.Max()))

	if viper.GetBool("show-metrics") {
		fmt.Println()
		vmetrics.WritePrometheus(os.Stdout, false)
	}

	return nil
}
