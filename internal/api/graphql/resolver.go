package graphql

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/avelez/postboard-be/internal/models"
	"github.com/avelez/postboard-be/internal/services"
)

// Resolver is the root resolver. Owner-scoped mutations are wired through
// withAuthentication at construction time, mirroring the operation table:
// createPost, getPost, DeletePost and UpdatePost require a resolved user;
// getUserPosts only decodes the token inline.
type Resolver struct {
	users  services.UserServiceProvider
	posts  services.PostServiceProvider
	tokens services.TokenVerifier

	createPost func(ctx context.Context, args createPostArgs) (*postResolver, error)
	getPost    func(ctx context.Context, args postIDArgs) (*postResolver, error)
	deletePost func(ctx context.Context, args postIDArgs) (*postResolver, error)
	updatePost func(ctx context.Context, args updatePostArgs) (*postResolver, error)
}

// NewResolver creates the root resolver and decorates the owner-scoped
// resolvers with authentication.
func NewResolver(
	users services.UserServiceProvider,
	posts services.PostServiceProvider,
	sessions services.SessionServiceProvider,
	tokens services.TokenVerifier,
) *Resolver {
	r := &Resolver{users: users, posts: posts, tokens: tokens}

	r.createPost = withAuthentication(sessions, func(ctx context.Context, user *models.User, args createPostArgs) (*postResolver, error) {
		post, err := r.posts.Create(ctx, args.Content, user)
		if err != nil {
			return nil, err
		}
		return &postResolver{post: post}, nil
	})

	r.getPost = withAuthentication(sessions, func(ctx context.Context, user *models.User, args postIDArgs) (*postResolver, error) {
		post, err := r.posts.GetByID(ctx, string(args.ID))
		if err != nil {
			return nil, err
		}
		return &postResolver{post: post}, nil
	})

	r.deletePost = withAuthentication(sessions, func(ctx context.Context, user *models.User, args postIDArgs) (*postResolver, error) {
		post, err := r.posts.Delete(ctx, string(args.ID), user)
		if errors.Is(err, services.ErrNotOwner) {
			return errorPost("Authorization error"), nil
		}
		if err != nil {
			return nil, err
		}
		return &postResolver{post: post}, nil
	})

	r.updatePost = withAuthentication(sessions, func(ctx context.Context, user *models.User, args updatePostArgs) (*postResolver, error) {
		post, err := r.posts.UpdateContent(ctx, string(args.ID), user, args.Content)
		if errors.Is(err, services.ErrNotOwner) {
			return errorPost("Authorization error"), nil
		}
		if err != nil {
			return nil, err
		}
		return &postResolver{post: post}, nil
	})

	return r
}

// bearer is implemented by every argument struct that carries a session
// token.
type bearer interface {
	bearerToken() string
}

// withAuthentication turns a resolver expecting an already-resolved user into
// one expecting a token argument. Any resolution failure is returned as data
// on the Post result, never as a GraphQL error.
func withAuthentication[A bearer](
	sessions services.SessionServiceProvider,
	fn func(ctx context.Context, user *models.User, args A) (*postResolver, error),
) func(ctx context.Context, args A) (*postResolver, error) {
	return func(ctx context.Context, args A) (*postResolver, error) {
		user, err := sessions.ResolveToken(ctx, args.bearerToken())
		if err != nil {
			return errorPost("Authentication error"), nil
		}
		return fn(ctx, user, args)
	}
}

type createPostArgs struct {
	Content string
	Token   string
}

func (a createPostArgs) bearerToken() string { return a.Token }

type postIDArgs struct {
	ID    graphql.ID
	Token string
}

func (a postIDArgs) bearerToken() string { return a.Token }

type updatePostArgs struct {
	ID      graphql.ID
	Token   string
	Content string
}

func (a updatePostArgs) bearerToken() string { return a.Token }

type userRegisterInput struct {
	Username  string
	Age       *int32
	FirstName *string
	LastName  *string
	Password  string
}

type userLoginInput struct {
	Username string
	Password string
}

// Ping is the unauthenticated health check.
func (r *Resolver) Ping() string {
	return "pong"
}

// CreateUser registers a new account. Constraint violations (duplicate
// username, invalid input) come back on the error field; anything else is a
// GraphQL error.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input userRegisterInput }) (*registrationResultResolver, error) {
	input := services.RegisterInput{
		Username: args.Input.Username,
		Password: args.Input.Password,
		Age:      args.Input.Age,
	}
	if args.Input.FirstName != nil {
		input.FirstName = *args.Input.FirstName
	}
	if args.Input.LastName != nil {
		input.LastName = *args.Input.LastName
	}

	user, err := r.users.Register(ctx, input)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.Is(err, services.ErrUsernameTaken) || errors.As(err, &verrs) {
			return &registrationResultResolver{errMsg: strPtr(err.Error())}, nil
		}
		return nil, err
	}
	return &registrationResultResolver{user: user}, nil
}

// LoginUser checks the credentials and returns a session token. Bad
// credentials come back as {error: "Login failed"}.
func (r *Resolver) LoginUser(ctx context.Context, args struct{ Input userLoginInput }) (*loginResultResolver, error) {
	token, err := r.users.Login(ctx, args.Input.Username, args.Input.Password)
	if errors.Is(err, services.ErrLoginFailed) {
		return &loginResultResolver{errMsg: strPtr(err.Error())}, nil
	}
	if err != nil {
		return nil, err
	}
	return &loginResultResolver{token: &token}, nil
}

// GetPosts lists every post with its owner attached. No authentication.
func (r *Resolver) GetPosts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return postResolvers(posts), nil
}

// GetUserPosts lists the caller's posts. The token is decoded inline with
// the codec only; there is no user lookup on this path, so a bad signature
// is a GraphQL error rather than an error-field result.
func (r *Resolver) GetUserPosts(ctx context.Context, args struct{ Token string }) ([]*postResolver, error) {
	userID, err := r.tokens.Verify(args.Token)
	if err != nil {
		return nil, fmt.Errorf("authentication error: %w", err)
	}

	posts, err := r.posts.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return postResolvers(posts), nil
}

// CreatePost creates a post owned by the authenticated caller.
func (r *Resolver) CreatePost(ctx context.Context, args createPostArgs) (*postResolver, error) {
	return r.createPost(ctx, args)
}

// GetPost fetches one post with its owner attached.
func (r *Resolver) GetPost(ctx context.Context, args postIDArgs) (*postResolver, error) {
	return r.getPost(ctx, args)
}

// DeletePost deletes a post if the authenticated caller owns it.
func (r *Resolver) DeletePost(ctx context.Context, args postIDArgs) (*postResolver, error) {
	return r.deletePost(ctx, args)
}

// UpdatePost replaces a post's content if the authenticated caller owns it.
func (r *Resolver) UpdatePost(ctx context.Context, args updatePostArgs) (*postResolver, error) {
	return r.updatePost(ctx, args)
}

type userResolver struct {
	user *models.User
}

func (r *userResolver) Username() *string {
	return strPtr(r.user.Username)
}

func (r *userResolver) Age() *int32 {
	return r.user.Age
}

func (r *userResolver) FirstName() *string {
	if r.user.FirstName == "" {
		return nil
	}
	return strPtr(r.user.FirstName)
}

func (r *userResolver) LastName() *string {
	if r.user.LastName == "" {
		return nil
	}
	return strPtr(r.user.LastName)
}

type postResolver struct {
	post   *models.Post
	errMsg *string
}

func (r *postResolver) ID() *graphql.ID {
	if r.post == nil {
		return nil
	}
	id := graphql.ID(r.post.ID.Hex())
	return &id
}

func (r *postResolver) Content() *string {
	if r.post == nil {
		return nil
	}
	return strPtr(r.post.Content)
}

func (r *postResolver) User() *userResolver {
	if r.post == nil || r.post.Owner == nil {
		return nil
	}
	return &userResolver{user: r.post.Owner}
}

func (r *postResolver) Error() *string {
	return r.errMsg
}

type registrationResultResolver struct {
	user   *models.User
	errMsg *string
}

func (r *registrationResultResolver) ID() *graphql.ID {
	if r.user == nil {
		return nil
	}
	id := graphql.ID(r.user.ID.Hex())
	return &id
}

func (r *registrationResultResolver) Username() *string {
	if r.user == nil {
		return nil
	}
	return strPtr(r.user.Username)
}

func (r *registrationResultResolver) Error() *string {
	return r.errMsg
}

type loginResultResolver struct {
	token  *string
	errMsg *string
}

func (r *loginResultResolver) Token() *string {
	return r.token
}

func (r *loginResultResolver) Error() *string {
	return r.errMsg
}

func errorPost(msg string) *postResolver {
	return &postResolver{errMsg: &msg}
}

func postResolvers(posts []models.Post) []*postResolver {
	resolvers := make([]*postResolver, 0, len(posts))
	for i := range posts {
		resolvers = append(resolvers, &postResolver{post: &posts[i]})
	}
	return resolvers
}

func strPtr(s string) *string {
	return &s
}
