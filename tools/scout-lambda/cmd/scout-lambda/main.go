package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tyler180/fbref-scout/internal/config"
	"github.com/tyler180/fbref-scout/tools/scout-lambda/internal/app/scoutfn"
)

func main() {
	log.SetFlags(0)
	// fail the cold start rather than every invocation
	if _, err := config.Load(); err != nil {
		log.Fatalf("scout-lambda: %v", err)
	}
	lambda.Start(scoutfn.LambdaEntrypoint)
}
