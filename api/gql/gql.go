package gql

import (
	"github.com/caesium-cloud/slate/api/gql/schema"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
)

// Handler wraps the GraphQL schema over st and makes it injectable
// into the echo HTTP framework.
func Handler(st *store.Store) echo.HandlerFunc {
	schema, err := graphql.NewSchema(schema.New(st))
	if err != nil {
		panic(err)
	}

	return echo.WrapHandler(
		handler.New(
			&handler.Config{
				Schema:   &schema,
				Pretty:   true,
				GraphiQL: true,
			},
		),
	)
}
