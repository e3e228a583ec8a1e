package reverse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemamap"
	"github.com/syssam/schemamap/internal/testutil"
	"github.com/syssam/schemamap/mapping"
	"github.com/syssam/schemamap/schema"
)

// ============================================================================
// Fixtures
// ============================================================================

func blog() []*schema.Table {
	return []*schema.Table{
		testutil.Table("user").Int("id").String("name", 255).PK("id").Build(),
		testutil.Table("post").Int("id", "author_id").String("title", 100).PK("id").Ref("author_id", "user").Build(),
		testutil.Table("comment").Int("id", "post_id").String("body", 1000).PK("id").Ref("post_id", "post").Build(),
	}
}

func newTestInferencer(t *testing.T, tables []*schema.Table, opts ...Option) *Inferencer {
	t.Helper()
	inf, err := New(tables, append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)...)
	require.NoError(t, err)
	return inf
}

func mustMap(t *testing.T, inf *Inferencer, class string) *mapping.Entity {
	t.Helper()
	e, err := inf.Map(class)
	require.NoError(t, err)
	return e
}

func kinds(e *mapping.Entity) []mapping.AssociationKind {
	var ks []mapping.AssociationKind
	for _, a := range e.Associations {
		ks = append(ks, a.Kind)
	}
	return ks
}

func diagnosticKinds(ds []mapping.Diagnostic) []mapping.DiagnosticKind {
	var ks []mapping.DiagnosticKind
	for _, d := range ds {
		ks = append(ks, d.Kind)
	}
	return ks
}

// ============================================================================
// Construction
// ============================================================================

func TestNew_InvalidOption(t *testing.T) {
	_, err := New(nil, WithClassName("", "User"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(nil, WithLogger(nil))
	assert.True(t, IsConfigError(err))
}

func TestNewConfig_CollectsErrors(t *testing.T) {
	_, err := NewConfig(WithClassName("", "User"), WithLogger(nil), WithNamespace("App"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ClassName")
	assert.Contains(t, err.Error(), "Logger")
}

func TestInferencer_ClassNames(t *testing.T) {
	inf := newTestInferencer(t, blog(), WithNamespace("Blog"))
	assert.Equal(t, []string{"Blog.User", "Blog.Post", "Blog.Comment"}, inf.ClassNames())
	assert.True(t, inf.IsTransient("Blog.User"))
	assert.True(t, inf.IsTransient("Anything"))
	assert.True(t, inf.ForeignKeys())
	assert.Empty(t, inf.Diagnostics())
}

func TestInferencer_UnknownEntity(t *testing.T) {
	inf := newTestInferencer(t, blog())
	_, err := inf.Map("Nope")
	require.Error(t, err)
	assert.True(t, schemamap.IsUnknownEntity(err))
	assert.ErrorIs(t, err, schemamap.ErrUnknownEntity)
}

func TestInferencer_SchemaFilter(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("customer").Int("id").PK("id").Build(),
		testutil.Table("billing.invoice").Int("id").PK("id").Build(),
		testutil.Table("shop.order").Int("id").PK("id").Build(),
	}
	inf := newTestInferencer(t, tables, WithSchemaFilter("billing"))
	assert.Equal(t, []string{"Customer", "Billing.Invoice"}, inf.ClassNames())
}

func TestInferencer_RepositoryClass(t *testing.T) {
	inf := newTestInferencer(t, blog(), WithRepositoryClass("App.Repository"))
	e := mustMap(t, inf, "User")
	assert.Equal(t, "App.Repository", e.RepositoryClass)
	assert.Equal(t, "user", e.Table)
}

// ============================================================================
// Fields
// ============================================================================

func TestMap_Fields(t *testing.T) {
	inf := newTestInferencer(t, blog())
	e := mustMap(t, inf, "Post")

	require.Len(t, e.Fields, 2)
	id := e.Fields[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "id", id.Column)
	assert.Equal(t, "integer", id.Type)
	assert.Equal(t, schema.KindInteger, id.Kind)
	assert.True(t, id.ID)
	assert.False(t, id.AssociationKey)
	require.NotNil(t, id.Unsigned)
	assert.False(t, *id.Unsigned)
	assert.Nil(t, id.Length)

	title := e.Fields[1]
	assert.Equal(t, "title", title.Name)
	assert.Equal(t, "varchar", title.Type)
	assert.True(t, title.Nullable)
	require.NotNil(t, title.Length)
	assert.Equal(t, 100, *title.Length)
	require.NotNil(t, title.Fixed)
	assert.False(t, *title.Fixed)
	assert.Nil(t, title.Unsigned)

	assert.Nil(t, e.Field("authorId"), "foreign key columns surface as associations")
}

func TestMap_IdentifiersFirst(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("setting").String("value", 255).String("name", 64).PK("name").Build(),
	}
	e := mustMap(t, newTestInferencer(t, tables), "Setting")
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "name", e.Fields[0].Name)
	assert.True(t, e.Fields[0].ID)
	assert.Equal(t, "value", e.Fields[1].Name)
}

func TestMap_IDGenerator(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id").PK("id").Build(),
		testutil.Table("pair").Int("a", "b").PK("a", "b").Build(),
		testutil.Table("country").String("code", 2).PK("code").Build(),
		testutil.Table("profile").Int("user_id").String("bio", 255).PK("user_id").Ref("user_id", "user").Build(),
	}
	inf := newTestInferencer(t, tables)

	tests := []struct {
		class    string
		expected mapping.IDGenerator
	}{
		{"User", mapping.GeneratorAuto},
		{"Pair", mapping.GeneratorNone},
		{"Country", mapping.GeneratorNone},
		{"Profile", mapping.GeneratorNone},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustMap(t, inf, tt.class).IDGenerator)
		})
	}
}

func TestMap_UnmappedForeignKeyStaysScalar(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("post").Int("id", "import_id").PK("id").Ref("import_id", "import").Build(),
	}
	e := mustMap(t, newTestInferencer(t, tables), "Post")
	assert.NotNil(t, e.Field("importId"))
	assert.Empty(t, e.Associations)
	require.Len(t, e.Diagnostics, 1)
	assert.Equal(t, mapping.UnresolvedReference, e.Diagnostics[0].Kind)
}

// ============================================================================
// Many-to-one and one-to-many
// ============================================================================

func TestMap_ManyToOneRoundTrip(t *testing.T) {
	inf := newTestInferencer(t, blog())

	post := mustMap(t, inf, "Post")
	author := post.Association("author")
	require.NotNil(t, author)
	assert.Equal(t, mapping.ManyToOne, author.Kind)
	assert.Equal(t, "User", author.TargetEntity)
	assert.Equal(t, []mapping.JoinColumn{{Name: "author_id", ReferencedColumnName: "id"}}, author.JoinColumns)
	assert.Equal(t, "posts", author.InversedBy)
	assert.True(t, author.IsOwningSide())

	user := mustMap(t, inf, "User")
	posts := user.Association("posts")
	require.NotNil(t, posts)
	assert.Equal(t, mapping.OneToMany, posts.Kind)
	assert.Equal(t, "Post", posts.TargetEntity)
	assert.Equal(t, "author", posts.MappedBy)
	assert.Equal(t, "id", posts.IndexBy)
	assert.Empty(t, posts.Cascade)
	assert.False(t, posts.IsOwningSide())
}

func TestMap_OwningFieldName(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id").PK("id").Build(),
		testutil.Table("post").Int("id", "post_author_id", "writer_id").PK("id").
			Ref("post_author_id", "user").Ref("writer_id", "user").Build(),
	}
	inf := newTestInferencer(t, tables, WithFieldName("post", "writer_id", "creator"))

	post := mustMap(t, inf, "Post")
	author := post.Association("postAuthor")
	require.NotNil(t, author)
	assert.Nil(t, post.Association("author"))
	assert.Equal(t, "posts", author.InversedBy)
	creator := post.Association("creator")
	require.NotNil(t, creator)
	assert.Equal(t, "postsCreator", creator.InversedBy)

	user := mustMap(t, inf, "User")
	require.Len(t, user.Associations, 2)
	assert.Equal(t, "postAuthor", user.Associations[0].MappedBy)
	assert.Equal(t, "creator", user.Associations[1].MappedBy)
}

func TestMap_AssociationOrder(t *testing.T) {
	inf := newTestInferencer(t, blog())
	post := mustMap(t, inf, "Post")
	assert.Equal(t, []mapping.AssociationKind{mapping.ManyToOne, mapping.OneToMany}, kinds(post))
	assert.Equal(t, "comments", post.Associations[1].Name)
	assert.Equal(t, "post", post.Associations[1].MappedBy)
}

func TestMap_SelfReference(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("node").Int("id", "parent_id").PK("id").Ref("parent_id", "node").Build(),
	}
	e := mustMap(t, newTestInferencer(t, tables), "Node")
	require.Len(t, e.Associations, 2)

	parent := e.Associations[0]
	assert.Equal(t, "parent", parent.Name)
	assert.Equal(t, mapping.ManyToOne, parent.Kind)
	assert.Equal(t, "Node", parent.TargetEntity)
	assert.Equal(t, "nodes", parent.InversedBy)

	children := e.Associations[1]
	assert.Equal(t, "nodes", children.Name)
	assert.Equal(t, mapping.OneToMany, children.Kind)
	assert.Equal(t, "parent", children.MappedBy)
}

func TestMap_CompositeKeyCollection(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("order").Int("id").PK("id").Build(),
		testutil.Table("line").Int("order_id", "position", "quantity").PK("order_id", "position").Ref("order_id", "order").Build(),
	}
	inf := newTestInferencer(t, tables)

	order := mustMap(t, inf, "Order")
	lines := order.Association("lines")
	require.NotNil(t, lines)
	assert.Equal(t, mapping.OneToMany, lines.Kind)
	assert.Equal(t, "order", lines.MappedBy)
	assert.Equal(t, "position", lines.IndexBy)
	assert.True(t, lines.CascadesAll())

	line := mustMap(t, inf, "Line")
	require.Len(t, line.Identifiers(), 2)
	assert.True(t, line.Field("order").AssociationKey)
	assert.False(t, line.Field("position").AssociationKey)
	assert.Equal(t, "lines", line.Association("order").InversedBy)
}

func TestMap_CollectionNameCollision(t *testing.T) {
	t.Run("same candidate table", func(t *testing.T) {
		tables := []*schema.Table{
			testutil.Table("user").Int("id").PK("id").Build(),
			testutil.Table("message").Int("id", "sender_id", "recipient_id").PK("id").
				Ref("sender_id", "user").Ref("recipient_id", "user").Build(),
		}
		inf := newTestInferencer(t, tables)

		user := mustMap(t, inf, "User")
		require.Len(t, user.Associations, 2)
		assert.Equal(t, "messages", user.Associations[0].Name)
		assert.Equal(t, "sender", user.Associations[0].MappedBy)
		assert.Equal(t, "messagesRecipient", user.Associations[1].Name)
		assert.Equal(t, "recipient", user.Associations[1].MappedBy)
		assert.Empty(t, user.Diagnostics)

		message := mustMap(t, inf, "Message")
		assert.Equal(t, "messages", message.Association("sender").InversedBy)
		assert.Equal(t, "messagesRecipient", message.Association("recipient").InversedBy)
	})

	t.Run("different candidate tables", func(t *testing.T) {
		tables := []*schema.Table{
			testutil.Table("customer").Int("id").PK("id").Build(),
			testutil.Table("billing.invoice").Int("id", "customer_id").PK("id").Ref("customer_id", "customer").Build(),
			testutil.Table("shop.invoice").Int("id", "customer_id").PK("id").Ref("customer_id", "customer").Build(),
		}
		inf := newTestInferencer(t, tables)

		customer := mustMap(t, inf, "Customer")
		require.Len(t, customer.Associations, 2)
		assert.Equal(t, "invoices", customer.Associations[0].Name)
		assert.Equal(t, "Billing.Invoice", customer.Associations[0].TargetEntity)
		assert.Equal(t, "invoicesCustomer", customer.Associations[1].Name)
		assert.Equal(t, "Shop.Invoice", customer.Associations[1].TargetEntity)
	})
}

func TestMap_ScalarFieldCollision(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id").PK("id").Build(),
		testutil.Table("post").Int("id", "author_id").String("author", 64).PK("id").Ref("author_id", "user").Build(),
	}
	inf := newTestInferencer(t, tables)

	post := mustMap(t, inf, "Post")
	assert.NotNil(t, post.Field("author"))
	require.NotNil(t, post.Association("author2"))
	assert.Equal(t, "posts", post.Association("author2").InversedBy)
	assert.Equal(t, "author2", mustMap(t, inf, "User").Association("posts").MappedBy)
}

// ============================================================================
// One-to-one
// ============================================================================

func TestMap_OneToOneIdentity(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id").PK("id").Build(),
		testutil.Table("profile").Int("user_id").String("bio", 255).PK("user_id").Ref("user_id", "user").Build(),
	}
	inf := newTestInferencer(t, tables)

	profile := mustMap(t, inf, "Profile")
	id := profile.Field("user")
	require.NotNil(t, id)
	assert.True(t, id.ID)
	assert.True(t, id.AssociationKey)

	owner := profile.Association("user")
	require.NotNil(t, owner)
	assert.Equal(t, mapping.OneToOne, owner.Kind)
	assert.Equal(t, "User", owner.TargetEntity)
	assert.Equal(t, []mapping.JoinColumn{{Name: "user_id", ReferencedColumnName: "id"}}, owner.JoinColumns)
	assert.Equal(t, "profile", owner.InversedBy)
	assert.Empty(t, owner.Cascade)

	user := mustMap(t, inf, "User")
	require.Len(t, user.Associations, 1)
	inverse := user.Associations[0]
	assert.Equal(t, mapping.OneToOne, inverse.Kind)
	assert.Equal(t, "profile", inverse.Name)
	assert.Equal(t, "Profile", inverse.TargetEntity)
	assert.Equal(t, "user", inverse.MappedBy)
	assert.True(t, inverse.CascadesAll())
	assert.False(t, inverse.Kind.IsToMany())
}

func TestMap_DoubleOneToOne(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id", "account_id").PK("id").FK("account", []string{"account_id"}, []string{"user_id"}).Build(),
		testutil.Table("account").Int("user_id").PK("user_id").FK("user", []string{"user_id"}, []string{"account_id"}).Build(),
	}
	inf := newTestInferencer(t, tables)

	user := mustMap(t, inf, "User")
	assert.Equal(t, []mapping.AssociationKind{mapping.ManyToOne}, kinds(user))
	assert.Nil(t, user.Association("accounts"))
}

func TestMap_FakeInheritance(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("person").Int("id", "employee_id").PK("id").
			FK("employee", []string{"employee_id"}, []string{"person_id"}).Build(),
		testutil.Table("employee").Int("person_id", "salary").PK("person_id").Ref("person_id", "person").Build(),
	}

	t.Run("without foreign key constraints", func(t *testing.T) {
		inf := newTestInferencer(t, tables, WithForeignKeyConstraints(false))
		assert.False(t, inf.ForeignKeys())

		person := mustMap(t, inf, "Person")
		assert.Nil(t, person.Field("employeeId"), "join column maps once, as the association")
		require.Len(t, person.Fields, 1)
		assert.Equal(t, "id", person.Fields[0].Name)
		require.Len(t, person.Associations, 1)
		owner := person.Associations[0]
		assert.Equal(t, mapping.OneToOne, owner.Kind)
		assert.Equal(t, "employee", owner.Name)
		assert.Equal(t, "Employee", owner.TargetEntity)
		assert.Equal(t, []mapping.JoinColumn{{Name: "employee_id", ReferencedColumnName: "person_id"}}, owner.JoinColumns)
		assert.Equal(t, "person", owner.InversedBy)

		employee := mustMap(t, inf, "Employee")
		require.Len(t, employee.Associations, 1)
		inverse := employee.Associations[0]
		assert.Equal(t, mapping.OneToOne, inverse.Kind)
		assert.Equal(t, "person", inverse.Name)
		assert.Equal(t, "employee", inverse.MappedBy)
		assert.True(t, inverse.CascadesAll())
	})

	t.Run("ignored with foreign key constraints", func(t *testing.T) {
		inf := newTestInferencer(t, tables)
		person := mustMap(t, inf, "Person")
		assert.Equal(t, mapping.ManyToOne, person.Association("employee").Kind)
	})
}

func TestMap_NoForeignKeys(t *testing.T) {
	inf := newTestInferencer(t, blog(), WithForeignKeyConstraints(false))
	post := mustMap(t, inf, "Post")
	assert.Empty(t, post.Associations)
	assert.NotNil(t, post.Field("authorId"))
	assert.Equal(t, mapping.GeneratorAuto, post.IDGenerator)
}

// ============================================================================
// Many-to-many
// ============================================================================

func TestMap_ManyToMany(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("user").Int("id").PK("id").Build(),
		testutil.Table("group").Int("id").PK("id").Build(),
		userGroup("user_group", "user", "group"),
	}
	inf := newTestInferencer(t, tables)
	assert.Equal(t, []string{"User", "Group"}, inf.ClassNames())

	user := mustMap(t, inf, "User")
	require.Len(t, user.Associations, 1)
	groups := user.Associations[0]
	assert.Equal(t, mapping.ManyToMany, groups.Kind)
	assert.Equal(t, "groups", groups.Name)
	assert.Equal(t, "Group", groups.TargetEntity)
	assert.Equal(t, "users", groups.InversedBy)
	assert.Equal(t, "id", groups.IndexBy)
	require.NotNil(t, groups.JoinTable)
	assert.Equal(t, &mapping.JoinTable{
		Name:               "user_group",
		JoinColumns:        []mapping.JoinColumn{{Name: "user_id", ReferencedColumnName: "id"}},
		InverseJoinColumns: []mapping.JoinColumn{{Name: "group_id", ReferencedColumnName: "id"}},
	}, groups.JoinTable)

	group := mustMap(t, inf, "Group")
	require.Len(t, group.Associations, 1)
	users := group.Associations[0]
	assert.Equal(t, mapping.ManyToMany, users.Kind)
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, "User", users.TargetEntity)
	assert.Equal(t, "groups", users.MappedBy)
	assert.Nil(t, users.JoinTable)
	assert.False(t, users.IsOwningSide())
}

func TestMap_ManyToManyInsufficientInfo(t *testing.T) {
	entities := []*schema.Table{testutil.Table("user").Int("id").PK("id").Build()}
	joins := []*schema.Table{testutil.Table("user_tag").Int("user_id").PK("user_id").Ref("user_id", "user").Build()}
	inf, err := NewWithTables(entities, joins, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	user := mustMap(t, inf, "User")
	assert.Empty(t, user.Associations)
	assert.Equal(t, []mapping.DiagnosticKind{mapping.InsufficientJoinTableInfo}, diagnosticKinds(user.Diagnostics))
}

func TestMap_JoinKeyWithoutColumns(t *testing.T) {
	entities := []*schema.Table{
		testutil.Table("a").Int("id").PK("id").Build(),
		testutil.Table("b").Int("x", "y").PK("x", "y").Build(),
	}
	joins := []*schema.Table{
		testutil.Table("ab").Int("x", "y").PK("x", "y").
			FK("a", nil, nil).FK("b", []string{"x", "y"}, []string{"x", "y"}).Build(),
	}
	inf, err := NewWithTables(entities, joins, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	for _, class := range []string{"A", "B"} {
		t.Run(class, func(t *testing.T) {
			e := mustMap(t, inf, class)
			assert.Empty(t, e.Associations)
			assert.Equal(t, []mapping.DiagnosticKind{mapping.InsufficientJoinTableInfo}, diagnosticKinds(e.Diagnostics))
		})
	}
}

// ============================================================================
// Cross-schema
// ============================================================================

func TestMap_CrossSchema(t *testing.T) {
	tables := []*schema.Table{
		testutil.Table("crm.customer").Int("id").PK("id").Build(),
		testutil.Table("sales.order").Int("id", "customer_id").PK("id").Ref("customer_id", "crm.customer").Build(),
	}

	t.Run("denied", func(t *testing.T) {
		inf := newTestInferencer(t, tables)
		order := mustMap(t, inf, "Sales.Order")
		assert.Empty(t, order.Associations)
		assert.NotNil(t, order.Field("customerId"))
		assert.Equal(t, []mapping.DiagnosticKind{mapping.CrossSchemaDenied}, diagnosticKinds(order.Diagnostics))
		assert.Empty(t, mustMap(t, inf, "Crm.Customer").Associations)
	})

	t.Run("allowed", func(t *testing.T) {
		inf := newTestInferencer(t, tables, WithCrossSchema("sales", "crm", true))
		order := mustMap(t, inf, "Sales.Order")
		require.Len(t, order.Associations, 1)
		assert.Equal(t, "customer", order.Associations[0].Name)
		assert.Equal(t, "Crm.Customer", order.Associations[0].TargetEntity)
		assert.Equal(t, "orders", order.Associations[0].InversedBy)

		customer := mustMap(t, inf, "Crm.Customer")
		require.Len(t, customer.Associations, 1)
		assert.Equal(t, mapping.OneToMany, customer.Associations[0].Kind)
		assert.Equal(t, "Sales.Order", customer.Associations[0].TargetEntity)
	})
}

// ============================================================================
// Determinism and concurrency
// ============================================================================

func TestMap_Idempotent(t *testing.T) {
	inf := newTestInferencer(t, blog())
	for _, class := range inf.ClassNames() {
		first := mustMap(t, inf, class)
		second := mustMap(t, inf, class)
		assert.Equal(t, first, second, class)
	}
}

func TestMapAll(t *testing.T) {
	inf := newTestInferencer(t, blog())
	entities, err := inf.MapAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entities, 3)
	for i, class := range inf.ClassNames() {
		assert.Equal(t, class, entities[i].Name)
		assert.Equal(t, mustMap(t, inf, class), entities[i])
	}
}

func TestMapAll_Canceled(t *testing.T) {
	inf := newTestInferencer(t, blog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := inf.MapAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// ============================================================================
// Load
// ============================================================================

type fakeSource struct {
	tables      []*schema.Table
	broken      map[string]bool
	foreignKeys bool
	listErr     error
}

func (s *fakeSource) ListTables(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var names []string
	for _, t := range s.tables {
		names = append(names, t.Name)
	}
	return names, nil
}

func (s *fakeSource) DescribeTable(_ context.Context, name string) (*schema.Table, error) {
	if s.broken[name] {
		return nil, schemamap.NewUnsupportedTypeError(name, "geom", "geometry")
	}
	for _, t := range s.tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeSource) SupportsForeignKeyConstraints() bool { return s.foreignKeys }

func TestLoad(t *testing.T) {
	tables := append(blog(), testutil.Table("place").Int("id").PK("id").Build())
	src := &fakeSource{tables: tables, broken: map[string]bool{"place": true}, foreignKeys: true}

	inf, err := Load(context.Background(), src, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Post", "Comment"}, inf.ClassNames())
	assert.True(t, inf.ForeignKeys())

	diags := inf.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, mapping.IntrospectionFailure, diags[0].Kind)
	assert.Equal(t, "place", diags[0].Table)
	assert.Contains(t, diags[0].Message, "geometry")
}

func TestLoad_Capability(t *testing.T) {
	src := &fakeSource{tables: blog()}
	inf, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.False(t, inf.ForeignKeys())
	assert.Empty(t, mustMap(t, inf, "Post").Associations)

	inf, err = Load(context.Background(), src, WithForeignKeyConstraints(true))
	require.NoError(t, err)
	assert.True(t, inf.ForeignKeys())
}

func TestLoad_ListError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Load(context.Background(), &fakeSource{listErr: boom})
	assert.ErrorIs(t, err, boom)
}
