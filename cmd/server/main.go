package main

import (
	"github.com/inkpress/inkpress/file_store"
	"github.com/inkpress/inkpress/server"
	"github.com/inkpress/inkpress/utils"
	"github.com/inkpress/inkpress/utils/dotenv"
	Flag "github.com/inkpress/inkpress/utils/flag"
	Logger "github.com/inkpress/inkpress/utils/log"
)

func main() {
	Flag.ParseFlags()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	files, err := file_store.NewFromEnv()
	if err != nil {
		Logger.Log.Fatal("cannot initialize file store: ", err)
	}

	srv := server.New(db, files)
	router := srv.Router()

	Logger.Log.Info("api server starts up")
	router.Run(Flag.Addr)
}
