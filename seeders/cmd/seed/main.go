package main

import (
	"flag"
	"log"

	"backoffice-system/pkg/config"
	"backoffice-system/pkg/database/postgresql"
	"backoffice-system/seeders"
)

func main() {
	runDictionaries := flag.Bool("dictionaries", false, "seed roles and cost centres")
	runAdmin := flag.Bool("admin", false, "seed the administrator account")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runDictionaries && !*runAdmin && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runDictionaries {
		seeders.SeedDictionaries(dbPool)
	}
	if *runAll || *runAdmin {
		// the admin account references role ids, so dictionaries come first
		seeders.SeedAdmin(dbPool)
	}

	log.Println("seeding finished")
}
