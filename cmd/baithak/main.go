// Baithak is a webcam squat coach: it counts reps, scores form, and serves
// a live dashboard.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smitra/baithak/internal/app"
	"github.com/smitra/baithak/internal/cloud"
	"github.com/smitra/baithak/internal/config"
	"github.com/smitra/baithak/internal/server"
	"github.com/smitra/baithak/internal/store"
	"github.com/smitra/baithak/internal/tray"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "baithak",
		Short: "Webcam squat coach with rep counting and live feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.baithak/config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the coaching pipeline and dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	serveCmd.Flags().Bool("no-tray", false, "run without the system tray")
	serveCmd.Flags().Bool("no-voice", false, "disable spoken feedback")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List saved workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory()
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show workout totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export saved workouts to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0])
		},
	}

	rootCmd.AddCommand(serveCmd, historyCmd, statsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return store.New(cfg.DatabasePath())
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if noVoice, _ := cmd.Flags().GetBool("no-voice"); noVoice {
		cfg.VoiceEnabled = false
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	history := store.NewHistory(cfg.HistoryPath())
	syncer := cloud.NewSyncer(cfg.SyncURL, cfg.SyncAPIKey)

	a := app.New(app.Config{
		Store:        st,
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThreshold,
		VoiceEnabled: cfg.VoiceEnabled,
	})

	if err := a.Start(); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}
	defer a.Stop()
	a.SetEnabled(true)

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(cfg.DataDir)
	}
	if staticDir != "" {
		log.Printf("Serving static files from: %s", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		History:   history,
		Sync:      syncer,
		Sessions:  a.Sessions(),
		Camera:    a.Camera(),
		Source:    a,
	})

	log.Printf("Starting server on %s", cfg.ListenAddr)

	noTray, _ := cmd.Flags().GetBool("no-tray")
	if noTray {
		return srv.ListenAndServe(cfg.ListenAddr)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.ListenAddr)
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnDashboard(func() {
		openBrowser("http://" + cfg.ListenAddr)
	})
	t.OnReset(func() {
		a.CurrentSession().Counter.Reset()
		t.SetReps(0)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			if err != nil {
				log.Printf("Server failed: %v", err)
			}
		case <-sigCh:
		}
		os.Exit(0)
	}()

	// Blocks until the tray quit item is clicked
	t.Run()
	return nil
}

func runHistory() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	workouts, err := st.Workouts().List()
	if err != nil {
		return err
	}

	if len(workouts) == 0 {
		fmt.Println("No workouts saved yet.")
		return nil
	}

	for _, w := range workouts {
		fmt.Printf("%s  %-10s  %3d reps  %3d%% accuracy\n",
			w.Date.Format("2006-01-02 15:04"), w.Exercise, w.Reps, w.Accuracy)
	}
	return nil
}

func runStats() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	totals, err := st.Workouts().Totals()
	if err != nil {
		return err
	}

	fmt.Printf("Workouts: %d\n", totals.Workouts)
	fmt.Printf("Total reps: %d\n", totals.Reps)
	fmt.Printf("Average accuracy: %d%%\n", totals.AvgAccuracy)
	return nil
}

func runExport(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	workouts, err := st.Workouts().List()
	if err != nil {
		return err
	}

	out := store.NewHistory(path)
	// List is newest first; export oldest first
	for i := len(workouts) - 1; i >= 0; i-- {
		if err := out.Append(workouts[i]); err != nil {
			return err
		}
	}

	fmt.Printf("Exported %d workouts to %s\n", len(workouts), path)
	return nil
}

// findWebDir searches for the dashboard assets in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL with the platform default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
