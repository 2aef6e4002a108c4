package banner

import (
	"fmt"

	"mastermind/pkg/config"
)

const banner = `
███╗   ███╗ █████╗ ███████╗████████╗███████╗██████╗ ███╗   ███╗██╗███╗   ██╗██████╗
████╗ ████║██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗████╗ ████║██║████╗  ██║██╔══██╗
██╔████╔██║███████║███████╗   ██║   █████╗  ██████╔╝██╔████╔██║██║██╔██╗ ██║██║  ██║
██║╚██╔╝██║██╔══██║╚════██║   ██║   ██╔══╝  ██╔══██╗██║╚██╔╝██║██║██║╚██╗██║██║  ██║
██║ ╚═╝ ██║██║  ██║███████║   ██║   ███████╗██║  ██║██║ ╚═╝ ██║██║██║ ╚████║██████╔╝
╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝
`

// PrintWithEff prints the startup banner with the effective runtime
// configuration and a short readiness checklist.
func PrintWithEff(eff config.EffectiveConfigResult, version string) {
	addr := eff.Addr
	if addr == "" && eff.Config != nil {
		addr = eff.Config.Addr()
	}
	dbPath := eff.DBPath
	if dbPath == "" && eff.Config != nil {
		dbPath = eff.Config.Server.DBPath
	}
	src := eff.Source
	if src == "" {
		src = "flags"
	}

	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Printf("Config: %s\n", src)

	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("POST /v1/calendars          - Generate a weekly calendar")
	fmt.Println("POST /v1/calendars/next     - Generate the week after current_week_start")
	fmt.Println("GET  /v1/calendars          - List stored calendar weeks")
	fmt.Println("GET  /v1/calendars/{week}   - Fetch one stored calendar")
	fmt.Println("POST /v1/calendars/validate - Score a calendar without storing it")
	fmt.Println("GET  /v1/sample-data        - Ready-to-use sample request")

	fmt.Println("\n== Production? =================================================")
	keys := 0
	if eff.Config != nil {
		keys = len(eff.Config.Security.APIKeys)
	}
	if keys > 0 {
		fmt.Printf("- API keys: OK (%d)\n", keys)
	} else {
		fmt.Println("- API keys: MISSING (server runs open)")
	}

	if eff.Config != nil && eff.Config.Groq.APIKey != "" {
		fmt.Println("- Groq API key: configured")
	} else {
		fmt.Println("- Groq API key: MISSING (set GROQ_API_KEY)")
	}

	if eff.Config != nil && eff.Config.Server.TLS.CertFile != "" && eff.Config.Server.TLS.KeyFile != "" {
		fmt.Println("- TLS: configured")
	} else {
		fmt.Println("- TLS: unconfigured")
	}

	if eff.DBPath != "" {
		fmt.Printf("- DB Path: %s\n", eff.DBPath)
	} else {
		fmt.Println("- DB Path: not set (use --db or MASTERMIND_DB_PATH)")
	}

	if eff.Config != nil && eff.Config.Autogen.Enabled {
		cron := eff.Config.Autogen.Cron
		if cron == "" {
			cron = "0 6 * * 1"
		}
		fmt.Printf("- Autogen: enabled (cron=%s)\n", cron)
	} else {
		fmt.Println("- Autogen: disabled")
	}

	fmt.Println("\n== Logs: =================================================")
}
