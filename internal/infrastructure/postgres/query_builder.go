package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/domain/repository"
)

// sqlBuilder traduce Query a SQL parametrizado sobre la tabla del modelo (alias t).
type sqlBuilder struct {
	model   *entity.Model
	resolve func(name string) (*entity.Model, bool)
	args    []any
}

func newSQLBuilder(m *entity.Model, resolve func(string) (*entity.Model, bool)) *sqlBuilder {
	return &sqlBuilder{model: m, resolve: resolve}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *sqlBuilder) table() string {
	return ident(b.model.Table) + " t"
}

// column expresión SQL de un campo escalar.
func (b *sqlBuilder) column(name string) (string, *entity.Field, error) {
	f, ok := b.model.Field(name)
	if !ok {
		return "", nil, fmt.Errorf("postgres: campo desconocido %s.%s", b.model.Name, name)
	}
	if f.Type == entity.FieldManyToMany {
		return "", f, fmt.Errorf("postgres: %s.%s es many-to-many", b.model.Name, name)
	}
	return "t." + ident(f.ColumnName()), f, nil
}

// selectList columnas del SELECT en el mismo orden que scanTargets.
func (b *sqlBuilder) selectList() ([]string, error) {
	cols := make([]string, 0, len(b.model.Fields)+len(b.model.Annotations))
	for _, f := range b.model.Fields {
		if f.Type == entity.FieldManyToMany {
			cols = append(cols, fmt.Sprintf(
				"ARRAY(SELECT x.%s FROM %s x WHERE x.%s = t.id ORDER BY 1) AS %s",
				ident(f.ThroughTarget), ident(f.Through), ident(f.ThroughOwner), ident(f.Name)))
			continue
		}
		cols = append(cols, "t."+ident(f.ColumnName()))
	}
	for _, a := range b.model.Annotations {
		child, ok := b.resolve(a.Model)
		if !ok {
			return nil, fmt.Errorf("postgres: anotación %s: modelo %s no registrado", a.Name, a.Model)
		}
		fk, ok := child.Field(a.FK)
		if !ok {
			return nil, fmt.Errorf("postgres: anotación %s: campo %s.%s inexistente", a.Name, a.Model, a.FK)
		}
		cols = append(cols, fmt.Sprintf("(SELECT COUNT(*) FROM %s c WHERE c.%s = t.id) AS %s",
			ident(child.Table), ident(fk.ColumnName()), ident(a.Name)))
	}
	return cols, nil
}

// where cláusula WHERE (sin la palabra clave); "TRUE" si no hay condiciones.
func (b *sqlBuilder) where(q repository.Query) (string, error) {
	if q.None {
		return "FALSE", nil
	}
	parts := make([]string, 0, len(q.Conditions)+1)
	for _, c := range q.Conditions {
		sql, err := b.condition(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	if q.Search != nil {
		for _, term := range q.Search.Terms {
			sql, err := b.searchTerm(term, q.Search.Fields)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
	}
	if len(parts) == 0 {
		return "TRUE", nil
	}
	return strings.Join(parts, " AND "), nil
}

func (b *sqlBuilder) condition(c repository.Condition) (string, error) {
	var sql string
	switch c.Kind {
	case repository.CondIn:
		if len(c.Values) == 0 {
			sql = "FALSE"
			break
		}
		placeholders := make([]string, len(c.Values))
		for i, v := range c.Values {
			placeholders[i] = b.arg(v)
		}
		list := strings.Join(placeholders, ", ")
		if f, ok := b.model.Field(c.Field); ok && f.Type == entity.FieldManyToMany {
			sql = fmt.Sprintf("EXISTS (SELECT 1 FROM %s x WHERE x.%s = t.id AND x.%s IN (%s))",
				ident(f.Through), ident(f.ThroughOwner), ident(f.ThroughTarget), list)
			break
		}
		col, _, err := b.column(c.Field)
		if err != nil {
			return "", err
		}
		sql = fmt.Sprintf("%s IN (%s)", col, list)
	case repository.CondRange:
		col, _, err := b.column(c.Field)
		if err != nil {
			return "", err
		}
		var bounds []string
		if c.Lower != nil {
			bounds = append(bounds, fmt.Sprintf("%s >= %s", col, b.arg(c.Lower)))
		}
		if c.Upper != nil {
			op := "<="
			if c.UpperOpen {
				op = "<"
			}
			bounds = append(bounds, fmt.Sprintf("%s %s %s", col, op, b.arg(c.Upper)))
		}
		if len(bounds) == 0 {
			return "TRUE", nil
		}
		sql = strings.Join(bounds, " AND ")
	case repository.CondDatePart:
		col, f, err := b.column(c.Field)
		if err != nil {
			return "", err
		}
		if f.Type == entity.FieldDateTime {
			col = fmt.Sprintf("(%s AT TIME ZONE 'UTC')", col)
		}
		var parts []string
		for _, p := range []struct {
			name string
			val  int
		}{{"YEAR", c.Year}, {"MONTH", c.Month}, {"DAY", c.Day}} {
			if p.val != 0 {
				parts = append(parts, fmt.Sprintf("EXTRACT(%s FROM %s)::int = %s", p.name, col, b.arg(p.val)))
			}
		}
		if len(parts) == 0 {
			return "TRUE", nil
		}
		sql = strings.Join(parts, " AND ")
	default:
		return "", fmt.Errorf("postgres: condición no soportada %d", c.Kind)
	}
	if c.Negate {
		return "NOT (" + sql + ")", nil
	}
	return "(" + sql + ")", nil
}

func (b *sqlBuilder) searchTerm(term string, fields []repository.SearchField) (string, error) {
	ors := make([]string, 0, len(fields))
	for _, sf := range fields {
		col, _, err := b.column(sf.Field)
		if err != nil {
			return "", err
		}
		text := fmt.Sprintf("CAST(%s AS TEXT)", col)
		switch sf.Mode {
		case repository.SearchExact:
			ors = append(ors, fmt.Sprintf("LOWER(%s) = LOWER(%s)", text, b.arg(term)))
		case repository.SearchPrefix:
			ors = append(ors, fmt.Sprintf("%s ILIKE %s", text, b.arg(escapeLike(term)+"%")))
		default:
			ors = append(ors, fmt.Sprintf("%s ILIKE %s", text, b.arg("%"+escapeLike(term)+"%")))
		}
	}
	if len(ors) == 0 {
		return "TRUE", nil
	}
	return "(" + strings.Join(ors, " OR ") + ")", nil
}

// orderBy cláusula ORDER BY; admite campos escalares y anotaciones.
func (b *sqlBuilder) orderBy(order []repository.OrderField) (string, error) {
	if len(order) == 0 {
		return "t.id ASC", nil
	}
	parts := make([]string, 0, len(order)+1)
	hasID := false
	for _, o := range order {
		var col string
		switch {
		case o.Field == "id":
			col, hasID = "t.id", true
		case b.model.HasAnnotation(o.Field):
			col = ident(o.Field)
		default:
			c, _, err := b.column(o.Field)
			if err != nil {
				return "", err
			}
			col = c
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if !hasID {
		parts = append(parts, "t.id ASC")
	}
	return strings.Join(parts, ", "), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
