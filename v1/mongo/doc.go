/*
Package mongo provides the MongoDB aggregation client used by the listing package.

It wraps go.mongodb.org/mongo-driver/v2 and binds it to a single database, exposing
just the two calls the listing layer needs: Aggregate and Count.

Basic usage:

	client, err := mongo.NewClient(mongo.Config{
		URI:      "mongodb://localhost:27017",
		Database: "orders",
	})
	if err != nil {
		return err
	}
	defer client.Close()

	docs, err := client.Aggregate(ctx, "orders", pipeline.Compile(filters))

Count appends a {$count: "count"} stage and reports zero when the pipeline
yields no documents:

	total, err := client.Count(ctx, "orders", pipeline)

Errors from the driver are returned unwrapped so callers can inspect them with
the driver's helpers or IsTimeoutError and IsNetworkError.

Observability:

Every Aggregate and Count call is reported to the configured observer with
component "mongo":

	client.WithObserver(metricsClient)

FX integration:

	app := fx.New(
	    mongo.FXModule,
	    fx.Provide(func() mongo.Config { return cfg }),
	)

The module pings the server on start and disconnects on stop.
*/
package mongo
