package repositories

import (
	"encoding/json"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"estate-api/domain"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

// versionKey guarda en Memcached la versión actual de las búsquedas
// Todas las instancias arman sus claves con esa versión, así que
// incrementarla deja viejas todas las páginas cacheadas de una vez
const versionKey = "listings:version"

// localTTL es el tiempo máximo que una página vive en el caché local
const localTTL = 5 * time.Minute

// CacheRepository define la interfaz para el caché de búsquedas
type CacheRepository interface {
	Version() string
	Get(key string) ([]domain.Listing, bool)
	Set(key string, listings []domain.Listing)
	Invalidate()
	ClearLocal()
}

// cacheData representa los datos almacenados en caché
type cacheData struct {
	Listings []domain.Listing `json:"listings"`
}

// cacheRepository implementa CacheRepository con dos niveles
// Nivel 1: ccache en memoria. Nivel 2: Memcached compartido
type cacheRepository struct {
	localCache      *ccache.Cache[*cacheData]
	memcachedClient *memcache.Client // nil si no hay Memcached configurado
	ttl             time.Duration
	localVersion    atomic.Int64
}

// NewCacheRepository crea una nueva instancia de CacheRepository
// Con memcachedHost vacío solo se usa el caché local
func NewCacheRepository(memcachedHost string, ttl time.Duration) CacheRepository {
	localCache := ccache.New(ccache.Configure[*cacheData]().MaxSize(1000))

	var memcachedClient *memcache.Client
	if memcachedHost != "" {
		memcachedClient = memcache.New(memcachedHost)
		log.Printf("Cache repository initialized with Memcached at %s", memcachedHost)
	} else {
		log.Printf("Cache repository initialized without Memcached (local only)")
	}

	return &cacheRepository{
		localCache:      localCache,
		memcachedClient: memcachedClient,
		ttl:             ttl,
	}
}

// Version devuelve la versión actual para armar las claves
// Si Memcached no responde se usa el contador local de esta instancia
func (r *cacheRepository) Version() string {
	local := "l" + strconv.FormatInt(r.localVersion.Load(), 10)
	if r.memcachedClient == nil {
		return local
	}

	item, err := r.memcachedClient.Get(versionKey)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return "m0"
		}
		log.Printf("Error getting cache version from Memcached: %v", err)
		return local
	}
	return "m" + string(item.Value)
}

// Get obtiene datos del caché (primero local, luego Memcached)
func (r *cacheRepository) Get(key string) ([]domain.Listing, bool) {
	// 1. Buscar en caché local primero
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		log.Printf("Cache HIT (local): key=%s", key)
		return item.Value().Listings, true
	}

	if r.memcachedClient == nil {
		log.Printf("Cache MISS: key=%s", key)
		return nil, false
	}

	// 2. Si no está en local, buscar en Memcached
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			log.Printf("Cache MISS: key=%s", key)
			return nil, false
		}
		log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		return nil, false
	}

	// 3. Parsear datos de Memcached
	var data cacheData
	if err := json.Unmarshal(memcachedItem.Value, &data); err != nil {
		log.Printf("Error unmarshaling cache data from Memcached: key=%s, error=%v", key, err)
		return nil, false
	}

	// 4. Guardar en caché local para próximas consultas
	r.localCache.Set(key, &data, r.localTTL())
	log.Printf("Cache HIT (Memcached): key=%s, stored in local cache", key)

	return data.Listings, true
}

// Set guarda datos en ambos niveles de caché
func (r *cacheRepository) Set(key string, listings []domain.Listing) {
	data := &cacheData{Listings: listings}

	// 1. Guardar en caché local
	r.localCache.Set(key, data, r.localTTL())

	if r.memcachedClient == nil {
		return
	}

	// 2. Serializar a JSON para Memcached
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling cache data for Memcached: key=%s, error=%v", key, err)
		return
	}

	// 3. Guardar en Memcached (usa segundos)
	memcachedItem := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(r.ttl.Seconds()),
	}
	if err := r.memcachedClient.Set(memcachedItem); err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache SET: key=%s, ttl=%s", key, r.ttl)
}

// Invalidate deja viejas todas las búsquedas cacheadas
// Limpia el caché local e incrementa la versión compartida en Memcached
func (r *cacheRepository) Invalidate() {
	r.ClearLocal()

	if r.memcachedClient == nil {
		return
	}

	_, err := r.memcachedClient.Increment(versionKey, 1)
	if err == memcache.ErrCacheMiss {
		// La versión todavía no existe: la creamos en 1
		err = r.memcachedClient.Add(&memcache.Item{Key: versionKey, Value: []byte("1")})
		if err == memcache.ErrNotStored {
			// Otra instancia la creó al mismo tiempo
			_, err = r.memcachedClient.Increment(versionKey, 1)
		}
	}
	if err != nil {
		log.Printf("Error incrementing cache version in Memcached: %v", err)
	}
}

// ClearLocal vacía solo el caché en memoria de esta instancia
// Lo usa el consumidor de RabbitMQ cuando otra instancia modifica publicaciones
func (r *cacheRepository) ClearLocal() {
	r.localVersion.Add(1)
	r.localCache.Clear()
}

func (r *cacheRepository) localTTL() time.Duration {
	if r.ttl > 0 && r.ttl < localTTL {
		return r.ttl
	}
	return localTTL
}
