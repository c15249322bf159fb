// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sandwiches

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/votesandwich/action"
	"github.com/vechain/votesandwich/api/utils"
	"github.com/vechain/votesandwich/clause"
	"github.com/vechain/votesandwich/sandwich"
)

type Sandwiches struct {
	builder *sandwich.Builder
}

func New(builder *sandwich.Builder) *Sandwiches {
	return &Sandwiches{builder}
}

func (s *Sandwiches) handleBuild(w http.ResponseWriter, req *http.Request) error {
	var body BuildRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.User == "" {
		return utils.BadRequest(errors.New("user: empty"))
	}
	if err := validateClauses(body.Clauses); err != nil {
		return utils.BadRequest(err)
	}
	if body.Clauses == nil {
		body.Clauses = []*clause.Clause{}
	}

	res := s.builder.Build(req.Context(), body.User, body.Clauses)
	return utils.WriteJSON(w, NewBuildResponse(res))
}

func (s *Sandwiches) handleClassify(w http.ResponseWriter, req *http.Request) error {
	var body ClassifyRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := validateClauses(body.Clauses); err != nil {
		return utils.BadRequest(err)
	}

	actions := action.Classify(body.Clauses)
	out := make([]*Action, 0, len(actions))
	for _, a := range actions {
		out = append(out, convertAction(a))
	}
	return utils.WriteJSON(w, out)
}

func (s *Sandwiches) handleGetPower(w http.ResponseWriter, req *http.Request) error {
	user := mux.Vars(req)["user"]
	p, err := s.builder.Power(req.Context(), user)
	if err != nil {
		if errors.Is(err, sandwich.ErrNoUser) {
			return utils.BadRequest(errors.WithMessage(err, "user"))
		}
		return err
	}
	return utils.WriteJSON(w, &Power{User: user, Power: p})
}

// methodNotAllowed answers requests to a path served only for allowed.
func methodNotAllowed(allowed string) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		w.Header().Set("Allow", allowed)
		return utils.HTTPError(errors.Errorf("method %s not allowed", req.Method), http.StatusMethodNotAllowed)
	}
}

func (s *Sandwiches) Mount(root *mux.Router, pathPrefix string) {
	// the build route sits on the prefix itself, so it lives on root
	root.Path(pathPrefix).
		Methods(http.MethodPost).
		Name("sandwich_build").
		HandlerFunc(utils.WrapHandlerFunc(s.handleBuild))
	root.Path(pathPrefix).
		HandlerFunc(utils.WrapHandlerFunc(methodNotAllowed(http.MethodPost)))

	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/classify").
		Methods(http.MethodPost).
		Name("sandwich_classify").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClassify))
	sub.Path("/power/{user}").
		Methods(http.MethodGet).
		Name("sandwich_get_power").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPower))
}
