// Package graphql exposes the post/user operations as a GraphQL schema.
package graphql

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// Schema is the service's GraphQL schema. Result types carry an error field:
// authentication, authorization and credential failures come back as data on
// the result object, not as GraphQL errors. The mutation casing of
// DeletePost/UpdatePost is part of the wire contract.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		ping: String!
		getPost(id: ID!, token: String!): Post
		getPosts: [Post!]!
		getUserPosts(token: String!): [Post!]!
	}

	type Mutation {
		createUser(input: UserRegisterInput!): RegistrationResult!
		loginUser(input: UserLoginInput!): LoginResult!
		createPost(content: String!, token: String!): Post
		DeletePost(id: ID!, token: String!): Post
		UpdatePost(id: ID!, token: String!, content: String!): Post
	}

	type User {
		username: String
		age: Int
		firstName: String
		lastName: String
	}

	type RegistrationResult {
		id: ID
		username: String
		error: String
	}

	type LoginResult {
		token: String
		error: String
	}

	type Post {
		id: ID
		content: String
		user: User
		error: String
	}

	input UserRegisterInput {
		username: String!
		age: Int
		firstName: String
		lastName: String
		password: String!
	}

	input UserLoginInput {
		username: String!
		password: String!
	}
`

// NewSchema parses the schema against the given root resolver.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, resolver)
}
