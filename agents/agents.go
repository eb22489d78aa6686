package agents

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripdesk/db"
	"tripdesk/middleware"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAgents lists back-office accounts. Admin only (enforced at the
// route).
func GetAgents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.UserCollection.Find(r.Context(), filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch agents", http.StatusInternalServerError)
		return
	}
	defer cur.Close(r.Context())

	agents := []models.User{}
	if err := cur.All(r.Context(), &agents); err != nil {
		http.Error(w, "Failed to decode agents", http.StatusInternalServerError)
		return
	}
	for i := range agents {
		agents[i].Password = ""
	}

	utils.RespondWithJSON(w, http.StatusOK, agents)
}

func GetAgent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	agentID := ps.ByName("agentid")
	if agentID != claims.UserID && !utils.Contains(claims.Role, "admin") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var agent models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": agentID}).Decode(&agent); err != nil {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}
	agent.Password = ""

	utils.RespondWithJSON(w, http.StatusOK, agent)
}

// UpdateAgent edits an account's profile fields. Role changes are
// admin only; agents may edit their own name and email.
func UpdateAgent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	agentID := ps.ByName("agentid")
	isAdmin := utils.Contains(claims.Role, "admin")
	if agentID != claims.UserID && !isAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var input struct {
		Name  *string   `json:"name"`
		Email *string   `json:"email"`
		Role  *[]string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Role != nil {
		if !isAdmin {
			http.Error(w, "Only admins may change roles", http.StatusForbidden)
			return
		}
		set["role"] = *input.Role
	}
	if len(set) == 0 {
		http.Error(w, "Nothing to update", http.StatusBadRequest)
		return
	}

	res, err := db.UserCollection.UpdateOne(context.TODO(), bson.M{"userid": agentID}, bson.M{"$set": set})
	if err != nil {
		http.Error(w, "Failed to update agent", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Agent updated", nil)
}

// DeactivateAgent flags an account inactive instead of deleting it, so
// bookings keep a resolvable owner reference.
func DeactivateAgent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": ps.ByName("agentid")},
		bson.M{"$set": bson.M{"active": false, "deactivatedAt": time.Now().UTC()}},
	)
	if err != nil {
		http.Error(w, "Failed to deactivate agent", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Agent not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Agent deactivated", nil)
}
