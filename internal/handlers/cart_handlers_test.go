package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/togongs/goods-shop/internal/models"
)

func (env *testEnv) putCart(user *models.User, goodsID string, quantity uint) *httptest.ResponseRecorder {
	rec, c := env.doJSONRequest(http.MethodPut, "/api/goods/"+goodsID+"/cart", map[string]uint{"quantity": quantity})
	c.SetParamNames("goodsId")
	c.SetParamValues(goodsID)
	c.Set("user", user)
	require.NoError(env.T, env.C.PutCart(c))
	return rec
}

func TestPutCartUpsert(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice@example.com", "alice", "password")
	env.createGoods(5, "Widget", "tools")

	require.Equal(t, http.StatusOK, env.putCart(user, "5", 3).Code)
	require.Equal(t, http.StatusOK, env.putCart(user, "5", 7).Code)

	// One entry per (user, goods), last write wins.
	var items []models.CartItem
	require.NoError(t, env.DB.Find(&items).Error)
	require.Len(t, items, 1)
	require.EqualValues(t, 5, items[0].GoodsID)
	require.EqualValues(t, 7, items[0].Quantity)
}

func TestGetCartResolvesGoods(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice@example.com", "alice", "password")
	env.createGoods(5, "Widget", "tools")
	env.createGoods(9, "Gadget", "toys")

	env.putCart(user, "5", 7)
	env.putCart(user, "9", 2)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/goods/cart", nil)
	c.Set("user", user)
	require.NoError(t, env.C.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cart []struct {
			Quantity uint         `json:"quantity"`
			Goods    models.Goods `json:"goods"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Cart, 2)
	require.EqualValues(t, 7, resp.Cart[0].Quantity)
	require.Equal(t, "Widget", resp.Cart[0].Goods.Name)
	require.EqualValues(t, 2, resp.Cart[1].Quantity)
	require.Equal(t, "Gadget", resp.Cart[1].Goods.Name)
}

func TestGetCartEmpty(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice@example.com", "alice", "password")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/goods/cart", nil)
	c.Set("user", user)
	require.NoError(t, env.C.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"cart":[]}`, rec.Body.String())
}

func TestGetCartOnlyOwnEntries(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser("alice@example.com", "alice", "password")
	bob := env.createUser("bob@example.com", "bob", "password")
	env.createGoods(5, "Widget", "tools")

	env.putCart(bob, "5", 4)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/goods/cart", nil)
	c.Set("user", alice)
	require.NoError(t, env.C.GetCart(c))
	require.JSONEq(t, `{"cart":[]}`, rec.Body.String())
}

func TestDeleteCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice@example.com", "alice", "password")
	env.createGoods(5, "Widget", "tools")
	env.putCart(user, "5", 3)

	del := func(goodsID string) *httptest.ResponseRecorder {
		rec, c := env.doJSONRequest(http.MethodDelete, "/api/goods/"+goodsID+"/cart", nil)
		c.SetParamNames("goodsId")
		c.SetParamValues(goodsID)
		c.Set("user", user)
		require.NoError(t, env.C.DeleteCart(c))
		return rec
	}

	require.Equal(t, http.StatusOK, del("5").Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)

	// Deleting an absent entry is not an error.
	require.Equal(t, http.StatusOK, del("5").Code)
	require.Equal(t, http.StatusOK, del(strconv.Itoa(999)).Code)
}
