package schema

import (
	"strconv"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/search"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// New instantiates a fresh GraphQL schema reading from st.
func New(st *store.Store) graphql.SchemaConfig {
	return graphql.SchemaConfig{
		Query: graphql.NewObject(
			graphql.ObjectConfig{
				Name:   "Query",
				Fields: fields(st),
			},
		),
	}
}

// JSON carries extension values and match values, which may be any scalar.
var JSON = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "An arbitrary JSON value.",
	Serialize:   func(value interface{}) interface{} { return value },
	ParseValue:  func(value interface{}) interface{} { return value },
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return v.Value
		case *ast.BooleanValue:
			return v.Value
		case *ast.IntValue:
			n, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return nil
			}
			return n
		case *ast.FloatValue:
			f, err := strconv.ParseFloat(v.Value, 64)
			if err != nil {
				return nil
			}
			return f
		}
		return nil
	},
})

func versionField(name string, t graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, _ := p.Source.(*dataset.VersionRecord).Field(name)
			return v, nil
		},
	}
}

func nodeField(name string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, ok := p.Source.(*dataset.TreeNode).Field(name)
			if !ok {
				return nil, nil
			}
			return v, nil
		},
	}
}

var versionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Version",
	Fields: graphql.Fields{
		"uuid":         versionField("uuid", graphql.String),
		"job_id":       versionField("job_id", graphql.String),
		"sequence_id":  versionField("sequence_id", graphql.String),
		"shot_id":      versionField("shot_id", graphql.String),
		"version_type": versionField("version_type", graphql.String),
		"version":      versionField("version", graphql.Int),
		"version_name": versionField("version_name", graphql.String),
		"artist":       versionField("artist", graphql.String),
		"status":       versionField("status", graphql.String),
		"frame_range":  versionField("frame_range", graphql.String),
		"media_path":   versionField("media_path", graphql.String),
		"extra": &graphql.Field{
			Type: JSON,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return map[string]any(p.Source.(*dataset.VersionRecord).Extra), nil
			},
		},
	},
})

var nodeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Node",
	Fields: graphql.Fields{
		"uuid":       nodeField("uuid"),
		"level":      nodeField("level"),
		"job":        nodeField("job"),
		"sequence":   nodeField("sequence"),
		"shot":       nodeField("shot"),
		"comp_range": nodeField("comp_range"),
		"row_count": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return len(p.Source.(*dataset.TreeNode).Rows), nil
			},
		},
		"extra": &graphql.Field{
			Type: JSON,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return map[string]any(p.Source.(*dataset.TreeNode).Extra), nil
			},
		},
	},
})

var fieldInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FieldMatch",
	Fields: graphql.InputObjectConfigFieldMap{
		"field": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"value": &graphql.InputObjectFieldConfig{Type: JSON},
		"glob":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

func stringList(v interface{}) []string {
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func matchFields(v interface{}) []search.Field {
	items, _ := v.([]interface{})
	out := make([]search.Field, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		f := search.Field{Value: m["value"]}
		f.Name, _ = m["field"].(string)
		f.Glob, _ = m["glob"].(bool)
		out = append(out, f)
	}
	return out
}

func fields(st *store.Store) graphql.Fields {
	return graphql.Fields{
		"productions": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return st.Productions(), nil
			},
		},
		"fingerprint": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return st.Fingerprint()
			},
		},
		"version": &graphql.Field{
			Type: versionType,
			Args: graphql.FieldConfigArgument{
				"uuid": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, _ := p.Args["uuid"].(string)
				return st.FindVersion(id)
			},
		},
		"versions": &graphql.Field{
			Type: graphql.NewList(versionType),
			Args: graphql.FieldConfigArgument{
				"selection": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return st.SelectVersions(stringList(p.Args["selection"]))
			},
		},
		"rowCount": &graphql.Field{
			Type: graphql.Int,
			Args: graphql.FieldConfigArgument{
				"table":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"pointer": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				tableArg, _ := p.Args["table"].(string)
				t, err := store.ParseTable(tableArg)
				if err != nil {
					return nil, err
				}
				address, _ := p.Args["pointer"].(string)
				return st.RowCount(t, address)
			},
		},
		"search": &graphql.Field{
			Type: graphql.NewList(nodeType),
			Args: graphql.FieldConfigArgument{
				"level":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"fields": &graphql.ArgumentConfig{Type: graphql.NewList(fieldInput)},
				"branch": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				levelArg, _ := p.Args["level"].(string)
				level, err := dataset.ParseLevel(levelArg)
				if err != nil {
					return nil, err
				}
				branch, _ := p.Args["branch"].(string)
				return st.Search(matchFields(p.Args["fields"]), level, branch)
			},
		},
	}
}
