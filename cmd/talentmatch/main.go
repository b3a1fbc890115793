package main

import "github.com/cleitonmarx/talentmatch/internal/app"

func main() {
	err := app.NewMatchApp().
		Introspect(&app.ReportLoggerIntrospector{}).
		Run()
	if err != nil {
		panic(err)
	}
}
