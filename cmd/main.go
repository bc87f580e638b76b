package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"coursenest/internal/bucket"
	"coursenest/internal/cache"
	"coursenest/internal/canvas"
	"coursenest/internal/cli/scheme/colours"
	"coursenest/internal/config"
	"coursenest/internal/course"
	"coursenest/internal/loader"
)

func main() {
	config.SetDefaults()

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye!"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "coursenest",
		Short: "🎓 A cozy nest for your course data",
		Long: `
┌─────────────────────────────────────┐
│  🎓 Welcome to CourseNest! 📚      │
│  Your courses, fetched and cached   │
│  for quick offline browsing ✨     │
└─────────────────────────────────────┘

CourseNest pulls your courses, assignments, announcements, pages, and
modules from your LMS and keeps a local snapshot so repeated runs are fast.
		`,
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "🔄 Fetch and aggregate all course data",
		Long:  "Fetch every course resource (cache-first) and print a summary",
		Run: func(cmd *cobra.Command, args []string) {
			runSync(ctx, cmd)
		},
	}
	syncCmd.Flags().IntP("chunk", "c", 0, "Concurrent fetches per wave (default from config)")
	syncCmd.Flags().BoolP("refresh", "r", false, "Clear the cache before syncing")

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "📦 Manage the local course cache",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "📊 Show cache status",
		Run:   showCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "🧹 Clear all cached snapshots",
		Run: func(cmd *cobra.Command, args []string) {
			store := newStore()
			if err := store.ClearAll(); err != nil {
				colours.Error.Printf("❌ Failed to clear cache: %v\n", err)
				return
			}
			colours.Success.Println("✅ Cache cleared")
		},
	}

	cacheCmd.AddCommand(statusCmd, clearCmd)
	rootCmd.AddCommand(syncCmd, cacheCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	config.Init()
}

func newStore() *cache.Cache {
	return cache.New(config.CacheDir(), viper.GetDuration("cache.max_age"))
}

func runSync(ctx context.Context, cmd *cobra.Command) {
	token := viper.GetString("api.token")
	if token == "" {
		colours.Error.Println("❌ No API token configured")
		colours.Prompt.Println("💡 Set api.token in coursenest.yaml or export COURSENEST_API_TOKEN")
		os.Exit(1)
	}

	store := newStore()
	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := store.ClearAll(); err != nil {
			colours.Warning.Printf("⚠️ Could not clear cache: %v\n", err)
		}
	}

	api := canvas.New(viper.GetString("api.base_url"), token, nil)
	l := loader.New(api, store)
	if chunk, _ := cmd.Flags().GetInt("chunk"); chunk > 0 {
		l.SetChunkSize(chunk)
	} else {
		l.SetChunkSize(viper.GetInt("fetch.chunk_size"))
	}

	colours.Info.Println("🌐 Loading courses...")
	session, err := l.Load(ctx)
	if err != nil {
		colours.Error.Printf("❌ Failed to load: %v\n", err)
		os.Exit(1)
	}

	printSession(session)
}

func printSession(session *loader.Session) {
	fmt.Println()
	colours.Title.Printf("📚 %s's courses\n", session.User.Name)
	fmt.Println()

	for _, c := range session.Courses {
		colours.Course.Printf("%s", c.Name)
		fmt.Printf(" (%s)\n", c.CourseCode)
		fmt.Printf("   📄 %d pages | 🗂 %d modules | 📣 %d announcements | 📝 %d assignments\n",
			len(c.Pages), len(c.Modules), len(c.Announcements), len(c.Assignments))

		for _, g := range c.AssignmentGroups {
			if len(g.Items) == 0 {
				continue
			}
			if g.Label == bucket.DueSoon {
				colours.Due.Printf("   ⏰ due soon:\n")
				for _, a := range g.Items {
					due := "no due date"
					if a.DueAt != nil {
						due = a.DueAt.Format(time.RFC822)
					}
					fmt.Printf("      • %s (%s)\n", a.Name, due)
				}
			} else {
				fmt.Printf("   %s: %d\n", g.Label, len(g.Items))
			}
		}
		printTodayAnnouncements(c)
		fmt.Println()
	}

	colours.Success.Printf("✨ Loaded %d courses and %d groups\n", len(session.Courses), len(session.Groups))
}

func printTodayAnnouncements(c *course.Course) {
	for _, g := range c.AnnouncementGroups {
		if g.Label != bucket.Today || len(g.Items) == 0 {
			continue
		}
		colours.Info.Println("   📣 today:")
		for _, a := range g.Items {
			fmt.Printf("      • %s\n", a.Title)
		}
	}
}

func showCacheStatus(cmd *cobra.Command, args []string) {
	colours.Title.Println("📊 Cache Status")

	store := newStore()
	colours.Info.Printf("📁 Location: %s\n", store.Dir())

	kinds := []cache.Kind{cache.KindProfile, cache.KindEnrollments, cache.KindGroups}
	for _, kind := range kinds {
		info := store.GlobalInfo(kind)
		if !info.Exists {
			colours.Warning.Printf("❌ %s: not cached\n", kind)
			continue
		}
		state := colours.Success.Sprint("fresh")
		if !info.Fresh {
			state = colours.Warning.Sprint("stale")
		}
		fmt.Printf("✅ %s: %d bytes, %s (written %s)\n",
			kind, info.Size, state, info.ModTime.Format("2006-01-02 15:04:05"))
	}
}
